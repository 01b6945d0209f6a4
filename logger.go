package geminimcp

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// baseLogger returns the configured logger, or a nop logger.
func baseLogger(options *Options) *slog.Logger {
	if options.Logger == nil {
		return NopLogger()
	}

	return options.Logger
}

// loggerWithComponent returns the base logger with the component field set.
func loggerWithComponent(options *Options, component string) *slog.Logger {
	return baseLogger(options).With("component", component)
}
