package errors

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLINotFoundError(t *testing.T) {
	err := &CLINotFoundError{Name: "gemini", Err: exec.ErrNotFound}

	require.Equal(t, "gemini CLI not found: gemini", err.Error())
	require.ErrorIs(t, err, exec.ErrNotFound)
	require.True(t, err.IsGeminiMCPError())
}

func TestLaunchError(t *testing.T) {
	root := errors.New("permission denied")
	err := &LaunchError{Path: "/usr/local/bin/gemini", Err: root}

	require.Equal(t, "failed to launch /usr/local/bin/gemini: permission denied", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsGeminiMCPError())
}

func TestWorkspaceNotFoundError(t *testing.T) {
	err := &WorkspaceNotFoundError{Path: "/no/such/dir"}

	require.Equal(
		t,
		"The workspace root directory `/no/such/dir` does not exist. Please check the path and try again.",
		err.Error(),
	)
	require.True(t, err.IsGeminiMCPError())
}

func TestCLIJSONDecodeError(t *testing.T) {
	root := errors.New("unexpected token")
	err := &CLIJSONDecodeError{
		RawData: `{"not":"valid",`,
		Err:     root,
	}

	require.Equal(t, "failed to decode JSON from CLI: unexpected token", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsGeminiMCPError())
}

func TestErrorsAsType(t *testing.T) {
	var err error = &LaunchError{Path: "gemini", Err: exec.ErrNotFound}

	launchErr, ok := errors.AsType[*LaunchError](err)
	require.True(t, ok)
	require.Equal(t, "gemini", launchErr.Path)

	_, ok = errors.AsType[*CLINotFoundError](err)
	require.False(t, ok)
}
