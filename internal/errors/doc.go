// Package errors defines error types for the Gemini MCP server.
//
// This package provides structured error types for the failure scenarios of a
// gemini tool invocation: locating and launching the CLI, validating the
// workspace, and decoding the CLI's stream-json output. All error types
// support unwrapping and can be checked using errors.Is, errors.As, and
// errors.AsType.
package errors
