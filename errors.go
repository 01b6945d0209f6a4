package geminimcp

import "github.com/wagiedev/gemini-mcp-go/internal/errors"

// Re-export error types from internal package

// CLINotFoundError indicates the gemini CLI binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// LaunchError indicates the process could not be started.
type LaunchError = errors.LaunchError

// WorkspaceNotFoundError indicates the requested working directory does not exist.
type WorkspaceNotFoundError = errors.WorkspaceNotFoundError

// CLIJSONDecodeError indicates a line of CLI output was not valid JSON.
type CLIJSONDecodeError = errors.CLIJSONDecodeError

// GeminiMCPError is the base interface for all errors from this module.
type GeminiMCPError = errors.GeminiMCPError

// Re-export sentinel errors from internal package.
var (
	// ErrEmptyCommand indicates a Command without an executable name.
	ErrEmptyCommand = errors.ErrEmptyCommand

	// ErrStreamConsumed indicates a Stream sequence was ranged over twice.
	ErrStreamConsumed = errors.ErrStreamConsumed

	// ErrMissingSessionID indicates the gemini output carried no session id.
	ErrMissingSessionID = errors.ErrMissingSessionID

	// ErrNoAgentMessages indicates the gemini output carried no assistant reply.
	ErrNoAgentMessages = errors.ErrNoAgentMessages
)
