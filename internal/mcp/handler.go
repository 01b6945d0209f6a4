package mcp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/gemini-mcp-go/internal/cli"
	"github.com/wagiedev/gemini-mcp-go/internal/config"
	"github.com/wagiedev/gemini-mcp-go/internal/errors"
	"github.com/wagiedev/gemini-mcp-go/internal/message"
	"github.com/wagiedev/gemini-mcp-go/internal/subprocess"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "Gemini MCP Server-from guda.studio"

// Handler runs gemini tool invocations one at a time.
type Handler struct {
	log      *slog.Logger
	cliPath  string
	goos     string
	streamer config.Streamer

	// sem holds one token per running invocation.
	sem chan struct{}
}

// NewHandler creates a Handler. When options carry no Streamer a
// subprocess runner is used.
func NewHandler(log *slog.Logger, options *config.Options) *Handler {
	options = options.Normalize()

	streamer := options.Streamer
	if streamer == nil {
		streamer = subprocess.NewRunner(log, options)
	}

	goos := options.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	return &Handler{
		log:      log.With("component", "gemini_tool"),
		cliPath:  options.CliPath,
		goos:     goos,
		streamer: streamer,
		sem:      make(chan struct{}, 1),
	}
}

// Handle implements mcp.ToolHandler for the gemini tool.
//
// Invalid arguments and CLI launch failures are reported as error results.
// Everything else, including a missing workspace, is a JSON payload with a
// success flag.
func (h *Handler) Handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArguments(req)
	if err != nil {
		//nolint:nilerr // Intentionally return nil error - error is encoded in the result
		return ErrorResult(err.Error()), nil
	}

	payload, err := h.Invoke(ctx, args)
	if err != nil {
		//nolint:nilerr // Intentionally return nil error - error is encoded in the result
		return ErrorResult(err.Error()), nil
	}

	return JSONResult(payload)
}

// Invoke runs one gemini session and returns the tool payload. The error is
// non-nil when the CLI could not be launched or ctx ended while waiting for
// an earlier invocation to finish.
func (h *Handler) Invoke(ctx context.Context, args *Arguments) (map[string]any, error) {
	log := h.log.With("invocation_id", ulid.Make().String())

	dir, err := filepath.Abs(*args.Cd)
	if err != nil {
		dir = *args.Cd
	}

	if _, err := os.Stat(dir); err != nil {
		notFound := &errors.WorkspaceNotFoundError{Path: filepath.ToSlash(dir)}
		log.Warn("Workspace directory not found", "path", dir, "error", err)

		return map[string]any{
			"success": false,
			"error":   notFound.Error(),
		}, nil
	}

	cmd := config.Command{
		Name: h.cliPath,
		Args: cli.BuildArgs(&cli.Request{
			Prompt:    cli.PreparePrompt(*args.Prompt, h.goos),
			Sandbox:   args.Sandbox,
			Model:     args.Model,
			SessionID: args.SessionID,
		}),
		Dir: dir,
	}

	select {
	case h.sem <- struct{}{}:
	case <-ctx.Done():
		log.Info("Cancelled while waiting for a running invocation", "error", ctx.Err())

		return nil, ctx.Err()
	}
	defer func() { <-h.sem }()

	log.Info("Invoking gemini",
		"dir", dir,
		"sandbox", args.Sandbox,
		"model", args.Model,
		"resume", args.SessionID != "",
	)

	res, err := message.Aggregate(log, h.streamer.Stream(ctx, cmd))
	if err != nil {
		log.Error("Gemini invocation failed", "error", err)

		return nil, err
	}

	log.Info("Gemini invocation finished",
		"success", res.Success(),
		"session_id", res.SessionID,
		"event_count", len(res.AllMessages),
	)

	return res.Payload(args.ReturnAllMessages), nil
}

// NewGeminiServer creates a Server with the gemini tool registered.
func NewGeminiServer(log *slog.Logger, version string, options *config.Options) *Server {
	s := NewServer(ServerName, version)
	s.AddTool(GeminiTool(), NewHandler(log, options).Handle)

	return s
}
