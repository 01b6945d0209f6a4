package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	geminimcp "github.com/wagiedev/gemini-mcp-go"
	"github.com/wagiedev/gemini-mcp-go/internal/config"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}

			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// flags holds global command-line settings.
type flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	GeminiPath string
}

func main() {
	// Loaded before flag parsing so that .env can supply GEMINI_MCP_* values.
	if err := loadEnvFile(envFilePath()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	f := &flags{}

	return &cli.Command{
		Name:  "gemini-mcp",
		Usage: "Serve the Gemini CLI as an MCP tool over stdio",
		Description: `gemini-mcp exposes a single "gemini" tool to MCP clients. Each call runs
the Gemini CLI in the requested workspace, streams its JSON events, and
returns the assistant reply together with a session id for follow-up calls.

Logs go to stderr or --log-file; stdout carries the MCP protocol. A .env
file in the working directory (or GEMINI_MCP_ENV_FILE) is loaded first.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("GEMINI_MCP_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("GEMINI_MCP_LOG_FILE"),
				Destination: &f.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to YAML config file",
				Sources:     cli.EnvVars("GEMINI_MCP_CONFIG"),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "gemini-path",
				Usage:       "gemini executable name or path",
				Sources:     cli.EnvVars("GEMINI_MCP_GEMINI_PATH"),
				Destination: &f.GeminiPath,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve(ctx, f)
		},
	}
}

// serve loads configuration and runs the server until the client
// disconnects or a termination signal arrives.
func serve(ctx context.Context, f *flags) error {
	logger, closeLog, err := newLogger(f.LogLevel, f.LogFile, os.Stderr)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	file, err := config.LoadFile(f.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	options := file.Options(&config.Options{CliPath: f.GeminiPath})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()

		return geminimcp.Run(ctx,
			geminimcp.WithOptions(options),
			geminimcp.WithLogger(logger),
		)
	})

	// Records why the server stopped: signal, client disconnect or error.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down", "cause", context.Cause(ctx))

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", "error", err)

		return err
	}

	return nil
}

// envFilePath returns GEMINI_MCP_ENV_FILE, or ".env".
func envFilePath() string {
	if path := os.Getenv("GEMINI_MCP_ENV_FILE"); path != "" {
		return path
	}

	return ".env"
}

// loadEnvFile loads variables from path without overriding the environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("load env file: %w", err)
	}

	return nil
}
