package geminimcp

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/gemini-mcp-go/internal/mcp"
)

// Version is the version reported to MCP clients.
const Version = "0.1.0"

// Server is an MCP server exposing the gemini tool.
type Server = internalmcp.Server

// NewServer creates an MCP server with the gemini tool registered.
func NewServer(opts ...Option) *Server {
	options := applyOptions(opts)

	return internalmcp.NewGeminiServer(baseLogger(options), Version, options)
}

// Run serves the gemini tool over stdin and stdout until the client
// disconnects or ctx is cancelled. Cancellation is not reported as an error.
func Run(ctx context.Context, opts ...Option) error {
	options := applyOptions(opts)
	log := loggerWithComponent(options, "server")

	log.Info("Starting MCP server", "name", internalmcp.ServerName, "version", Version)

	err := NewServer(opts...).Run(ctx, &mcp.StdioTransport{})
	if err != nil && !stderrors.Is(err, context.Canceled) {
		log.Error("MCP server failed", "error", err)

		return fmt.Errorf("serve stdio: %w", err)
	}

	log.Info("MCP server stopped")

	return nil
}
