//go:build unix

package subprocess

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminateProcess asks p to exit with SIGTERM.
func terminateProcess(p *os.Process) error {
	return p.Signal(unix.SIGTERM)
}
