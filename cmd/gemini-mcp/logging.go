package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// newLogger returns a JSON logger at the given level writing to file, or to
// stderr when file is empty. stdout is reserved for the MCP transport.
//
// The level parameter can be one of: debug, info, warn, error.
func newLogger(level, file string, stderr io.Writer) (*slog.Logger, func(), error) {
	closer := func() {}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, closer, fmt.Errorf("parse log level: %w", err)
	}

	writer := stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, closer, fmt.Errorf("create logs dir: %w", err)
		}

		//nolint:gosec // G304: log file path comes from the operator
		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}

		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: lvl})), closer, nil
}
