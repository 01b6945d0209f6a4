package geminimcp

import (
	"context"
	"iter"

	"github.com/wagiedev/gemini-mcp-go/internal/cli"
	"github.com/wagiedev/gemini-mcp-go/internal/subprocess"
)

// Stream launches cmd and returns a single-pass sequence of its combined
// stdout and stderr lines, with trailing whitespace removed.
//
// A launch failure is yielded as the only element. When a line reports turn
// completion the process is asked to terminate after a short grace period.
// The process is reaped before the iteration returns, including when the
// caller breaks early or ctx is cancelled; cancellation yields ctx.Err()
// last.
//
// Example:
//
//	for line, err := range geminimcp.Stream(ctx, cmd, geminimcp.WithLogger(logger)) {
//	    if err != nil {
//	        return err
//	    }
//
//	    fmt.Println(line)
//	}
func Stream(ctx context.Context, cmd Command, opts ...Option) iter.Seq2[string, error] {
	options := applyOptions(opts)

	if options.Streamer != nil {
		return options.Streamer.Stream(ctx, cmd)
	}

	return subprocess.NewRunner(baseLogger(options), options).Stream(ctx, cmd)
}

// IsTurnCompleted reports whether line is a JSON object whose type is
// "turn.completed".
func IsTurnCompleted(line string) bool {
	return subprocess.IsTurnCompleted(line)
}

// EscapeWindows escapes s for passing as a single command-line argument on
// Windows.
func EscapeWindows(s string) string {
	return cli.EscapeWindows(s)
}

// UnescapeWindows reverses EscapeWindows.
func UnescapeWindows(s string) string {
	return cli.UnescapeWindows(s)
}
