package geminimcp

import (
	"log/slog"
	"time"

	"github.com/wagiedev/gemini-mcp-go/internal/config"
)

// Options configures the server and the subprocess runner.
type Options = config.Options

// Timing holds the subprocess lifecycle intervals.
type Timing = config.Timing

// Command specifies a process to stream.
type Command = config.Command

// Streamer produces the output lines of a Command.
type Streamer = config.Streamer

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCliPath sets the gemini executable. Bare names are looked up in PATH.
func WithCliPath(path string) Option {
	return func(o *Options) {
		o.CliPath = path
	}
}

// WithGracePeriod sets the delay between turn completion and terminating the CLI.
func WithGracePeriod(d time.Duration) Option {
	return func(o *Options) {
		o.Timing.GracePeriod = d
	}
}

// WithPollInterval sets how often process liveness is re-checked while waiting for output.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		o.Timing.PollInterval = d
	}
}

// WithExitTimeout sets how long to wait for the process to exit before killing it.
func WithExitTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timing.ExitTimeout = d
	}
}

// WithJoinTimeout sets how long to wait for the output reader to finish.
func WithJoinTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timing.JoinTimeout = d
	}
}

// WithMaxLineSize sets the maximum size in bytes of a single output line.
// Default is 1MB.
func WithMaxLineSize(size int) Option {
	return func(o *Options) {
		o.MaxLineSize = size
	}
}

// WithStreamer injects a custom line streamer in place of the subprocess runner.
// This is primarily useful for testing.
func WithStreamer(streamer Streamer) Option {
	return func(o *Options) {
		o.Streamer = streamer
	}
}

// WithOptions copies every set field of base into the options.
// Options applied afterwards take precedence.
func WithOptions(base *Options) Option {
	return func(o *Options) {
		if base == nil {
			return
		}

		if base.Logger != nil {
			o.Logger = base.Logger
		}

		if base.CliPath != "" {
			o.CliPath = base.CliPath
		}

		if base.Timing.GracePeriod > 0 {
			o.Timing.GracePeriod = base.Timing.GracePeriod
		}

		if base.Timing.PollInterval > 0 {
			o.Timing.PollInterval = base.Timing.PollInterval
		}

		if base.Timing.ExitTimeout > 0 {
			o.Timing.ExitTimeout = base.Timing.ExitTimeout
		}

		if base.Timing.JoinTimeout > 0 {
			o.Timing.JoinTimeout = base.Timing.JoinTimeout
		}

		if base.MaxLineSize > 0 {
			o.MaxLineSize = base.MaxLineSize
		}

		if base.GOOS != "" {
			o.GOOS = base.GOOS
		}

		if base.Streamer != nil {
			o.Streamer = base.Streamer
		}
	}
}
