//go:build integration

package integration

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	geminimcp "github.com/wagiedev/gemini-mcp-go"
)

// skipIfCLINotInstalled skips the test if the gemini CLI is not in PATH.
func skipIfCLINotInstalled(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("gemini"); err != nil {
		t.Skip("gemini CLI not installed")
	}
}

// skipIfLaunchFailed skips the test if the error indicates the CLI is not found.
func skipIfLaunchFailed(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*geminimcp.CLINotFoundError](err); ok {
		t.Skip("gemini CLI not installed")
	}
}

// contains42 checks if a string contains "42" in various formats.
func contains42(s string) bool {
	lower := strings.ToLower(s)

	return strings.Contains(lower, "42") ||
		strings.Contains(lower, "forty-two") ||
		strings.Contains(lower, "forty two")
}
