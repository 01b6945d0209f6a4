//go:build !unix

package subprocess

import "os"

// terminateProcess kills p. Platforms without SIGTERM have no graceful
// request to send.
func terminateProcess(p *os.Process) error {
	return p.Kill()
}
