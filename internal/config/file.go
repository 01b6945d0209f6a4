package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// File is the on-disk YAML configuration.
//
//	gemini_path: ${HOME}/.local/bin/gemini
//	grace_period: 300ms
//	exit_timeout: 5s
type File struct {
	GeminiPath   string        `yaml:"gemini_path"`
	GracePeriod  time.Duration `yaml:"grace_period"`
	PollInterval time.Duration `yaml:"poll_interval"`
	ExitTimeout  time.Duration `yaml:"exit_timeout"`
	JoinTimeout  time.Duration `yaml:"join_timeout"`
	MaxLineSize  int           `yaml:"max_line_size"`
}

// applyDefaults fills zero-valued fields with defaults.
func (f *File) applyDefaults() {
	t := Timing{
		GracePeriod:  f.GracePeriod,
		PollInterval: f.PollInterval,
		ExitTimeout:  f.ExitTimeout,
		JoinTimeout:  f.JoinTimeout,
	}.withDefaults()

	f.GracePeriod = t.GracePeriod
	f.PollInterval = t.PollInterval
	f.ExitTimeout = t.ExitTimeout
	f.JoinTimeout = t.JoinTimeout

	if f.MaxLineSize <= 0 {
		f.MaxLineSize = DefaultMaxLineSize
	}
}

// LoadFile reads the YAML configuration at path, expanding ${VAR} references
// in gemini_path. A missing file or empty path yields the defaults.
func LoadFile(path string) (*File, error) {
	f := &File{}

	if path == "" {
		f.applyDefaults()

		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.applyDefaults()

			return f, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	f.GeminiPath = expandEnvString(f.GeminiPath)
	f.applyDefaults()

	return f, nil
}

// Options converts the file into server options. Fields set in base take
// precedence over the file.
func (f *File) Options(base *Options) *Options {
	opts := &Options{}
	if base != nil {
		*opts = *base
	}

	if opts.CliPath == "" {
		opts.CliPath = f.GeminiPath
	}

	if opts.Timing.GracePeriod <= 0 {
		opts.Timing.GracePeriod = f.GracePeriod
	}

	if opts.Timing.PollInterval <= 0 {
		opts.Timing.PollInterval = f.PollInterval
	}

	if opts.Timing.ExitTimeout <= 0 {
		opts.Timing.ExitTimeout = f.ExitTimeout
	}

	if opts.Timing.JoinTimeout <= 0 {
		opts.Timing.JoinTimeout = f.JoinTimeout
	}

	if opts.MaxLineSize <= 0 {
		opts.MaxLineSize = f.MaxLineSize
	}

	return opts
}

// expandEnvString replaces ${VAR} in s with the value of the environment variable.
func expandEnvString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
