package errors

import (
	"errors"
	"fmt"
)

// GeminiMCPError is the base interface for all server errors.
type GeminiMCPError interface {
	error
	IsGeminiMCPError() bool
}

// Compile-time verification that all error types implement GeminiMCPError.
var (
	_ GeminiMCPError = (*CLINotFoundError)(nil)
	_ GeminiMCPError = (*LaunchError)(nil)
	_ GeminiMCPError = (*WorkspaceNotFoundError)(nil)
	_ GeminiMCPError = (*CLIJSONDecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEmptyCommand indicates a command specification without an executable.
	ErrEmptyCommand = errors.New("empty command")

	// ErrStreamConsumed indicates a line stream was ranged over more than once.
	ErrStreamConsumed = errors.New("line stream already consumed")

	// ErrMissingSessionID indicates the CLI stream never carried a session_id.
	ErrMissingSessionID = errors.New("Failed to get `SESSION_ID` from the gemini session.")

	// ErrNoAgentMessages indicates the CLI produced no assistant content.
	ErrNoAgentMessages = errors.New(
		"Failed to retrieve `agent_messages` data from the Gemini session. " +
			"This might be due to Gemini performing a tool call. " +
			"You can continue using the `SESSION_ID` to proceed with the conversation.",
	)
)

// CLINotFoundError indicates the gemini executable could not be found.
type CLINotFoundError struct {
	Name string
	Err  error
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("gemini CLI not found: %s", e.Name)
}

func (e *CLINotFoundError) Unwrap() error {
	return e.Err
}

// IsGeminiMCPError implements GeminiMCPError.
func (e *CLINotFoundError) IsGeminiMCPError() bool { return true }

// LaunchError indicates the CLI process could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsGeminiMCPError implements GeminiMCPError.
func (e *LaunchError) IsGeminiMCPError() bool { return true }

// WorkspaceNotFoundError indicates the requested working directory does not exist.
type WorkspaceNotFoundError struct {
	Path string
}

func (e *WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf(
		"The workspace root directory `%s` does not exist. Please check the path and try again.",
		e.Path,
	)
}

// IsGeminiMCPError implements GeminiMCPError.
func (e *WorkspaceNotFoundError) IsGeminiMCPError() bool { return true }

// CLIJSONDecodeError indicates a line of CLI output was not valid JSON.
// This error preserves the original raw line that failed to parse.
type CLIJSONDecodeError struct {
	RawData string
	Err     error
}

func (e *CLIJSONDecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON from CLI: %v", e.Err)
}

func (e *CLIJSONDecodeError) Unwrap() error {
	return e.Err
}

// IsGeminiMCPError implements GeminiMCPError.
func (e *CLIJSONDecodeError) IsGeminiMCPError() bool { return true }
