package cli

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveExecutable returns the absolute path of name when it is a bare
// command found on PATH. Names containing a path separator, and names that
// cannot be found, are returned as given.
func ResolveExecutable(log *slog.Logger, name string) string {
	if name == "" || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		log.Debug("Using explicit CLI path", "cli_path", name)

		return name
	}

	path, err := exec.LookPath(name)
	if err != nil {
		log.Debug("Executable not found in PATH, using name as given", "name", name, "error", err)

		return name
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	log.Debug("Resolved executable in PATH", "name", name, "path", path)

	return path
}
