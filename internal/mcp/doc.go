// Package mcp exposes the gemini CLI as a Model Context Protocol tool.
//
// Server wraps the official MCP SDK server and keeps its own registry of
// tools so they can also be invoked programmatically. Handler implements the
// gemini tool: it validates the workspace, builds the CLI command, streams the
// CLI output through a subprocess runner, and shapes the aggregated events
// into a JSON result. Invocations are serialized so that at most one CLI
// process runs at a time.
package mcp
