// Package config provides configuration types for the Gemini MCP server.
package config

import (
	"context"
	"iter"
)

// Command is an executable plus arguments and an optional working directory.
// It is immutable once constructed.
type Command struct {
	// Name is the executable name or path.
	Name string

	// Args are the command line arguments, excluding Name.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Streamer runs a command and exposes its combined output as lines.
// The default implementation is subprocess.Runner. Custom streamers can be
// injected via Options.Streamer for testing.
type Streamer interface {
	// Stream launches the command and yields its output lines in order.
	// A launch failure is yielded as the only element.
	Stream(ctx context.Context, cmd Command) iter.Seq2[string, error]
}
