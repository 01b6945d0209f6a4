package config

import (
	"log/slog"
	"time"
)

const (
	// DefaultGracePeriod is the delay between seeing turn completion and
	// asking the CLI to terminate, letting final output flush.
	DefaultGracePeriod = 300 * time.Millisecond

	// DefaultPollInterval is how often the line consumer re-checks process liveness.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultExitTimeout bounds the wait for natural process exit before killing.
	DefaultExitTimeout = 5 * time.Second

	// DefaultJoinTimeout bounds the wait for the output reader to finish.
	DefaultJoinTimeout = 5 * time.Second

	// DefaultMaxLineSize is the maximum size of a single line of CLI output.
	DefaultMaxLineSize = 1024 * 1024 // 1MB

	// DefaultCLIName is the executable looked up when no explicit path is set.
	DefaultCLIName = "gemini"
)

// Timing holds the subprocess lifecycle intervals.
type Timing struct {
	GracePeriod  time.Duration
	PollInterval time.Duration
	ExitTimeout  time.Duration
	JoinTimeout  time.Duration
}

// DefaultTiming returns the standard lifecycle intervals.
func DefaultTiming() Timing {
	return Timing{
		GracePeriod:  DefaultGracePeriod,
		PollInterval: DefaultPollInterval,
		ExitTimeout:  DefaultExitTimeout,
		JoinTimeout:  DefaultJoinTimeout,
	}
}

// withDefaults fills zero fields from DefaultTiming.
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()

	if t.GracePeriod <= 0 {
		t.GracePeriod = d.GracePeriod
	}

	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}

	if t.ExitTimeout <= 0 {
		t.ExitTimeout = d.ExitTimeout
	}

	if t.JoinTimeout <= 0 {
		t.JoinTimeout = d.JoinTimeout
	}

	return t
}

// Options configures the Gemini MCP server.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// CliPath is the explicit path to the gemini CLI binary.
	// If empty, "gemini" is searched in PATH.
	CliPath string

	// Timing controls the subprocess lifecycle. Zero fields use defaults.
	Timing Timing

	// MaxLineSize sets the maximum bytes for a single line of CLI output.
	// If zero, DefaultMaxLineSize is used.
	MaxLineSize int

	// GOOS overrides the platform used for prompt escaping.
	// If empty, runtime.GOOS is used.
	GOOS string

	// Streamer allows injecting a custom line streamer.
	// If nil, the default subprocess runner is created automatically.
	Streamer Streamer `json:"-"`
}

// Normalize returns a copy of o with defaults applied.
func (o *Options) Normalize() *Options {
	out := &Options{}
	if o != nil {
		*out = *o
	}

	out.Timing = out.Timing.withDefaults()

	if out.MaxLineSize <= 0 {
		out.MaxLineSize = DefaultMaxLineSize
	}

	if out.CliPath == "" {
		out.CliPath = DefaultCLIName
	}

	return out
}
