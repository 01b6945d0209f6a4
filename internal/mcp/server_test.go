package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func echoTool() *mcpgo.Tool {
	return NewTool("echo", "Echo the input", &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text": {Type: "string"},
		},
	})
}

func echoHandler(_ context.Context, req *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	text, _ := args["text"].(string)

	return TextResult("echo: " + text), nil
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcpgo.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	return text.Text
}

// TestServer_NameVersion tests basic metadata accessors.
func TestServer_NameVersion(t *testing.T) {
	s := NewServer("test-server", "1.2.3")

	require.Equal(t, "test-server", s.Name())
	require.Equal(t, "1.2.3", s.Version())
	require.Empty(t, s.ToolNames())
}

// TestServer_CallTool tests direct invocation through the registry.
func TestServer_CallTool(t *testing.T) {
	s := NewServer("test-server", "1.0.0")
	s.AddTool(echoTool(), echoHandler)

	require.Equal(t, []string{"echo"}, s.ToolNames())

	result, err := s.CallTool(context.Background(), "echo", map[string]any{"text": "hello"})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "echo: hello", resultText(t, result))
}

// TestServer_CallToolNotFound tests that an unknown tool yields an error result.
func TestServer_CallToolNotFound(t *testing.T) {
	s := NewServer("test-server", "1.0.0")

	result, err := s.CallTool(context.Background(), "missing", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "Tool not found: missing")
}

// TestServer_CallToolHandlerError tests that handler errors are encoded in the result.
func TestServer_CallToolHandlerError(t *testing.T) {
	s := NewServer("test-server", "1.0.0")
	s.AddTool(echoTool(), func(context.Context, *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return nil, stderrors.New("boom")
	})

	result, err := s.CallTool(context.Background(), "echo", map[string]any{})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "Tool execution failed: boom")
}

// TestServer_InMemoryTransport tests listing and calling tools over a real MCP session.
func TestServer_InMemoryTransport(t *testing.T) {
	ctx := t.Context()

	s := NewServer("test-server", "1.0.0")
	s.AddTool(echoTool(), echoHandler)

	clientTransport, serverTransport := mcpgo.NewInMemoryTransports()

	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)

	defer ss.Close()

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "0.0.1"}, nil)

	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	require.Equal(t, "echo", tools.Tools[0].Name)

	result, err := cs.CallTool(ctx, &mcpgo.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"text": "over the wire"},
	})
	require.NoError(t, err)
	require.Equal(t, "echo: over the wire", resultText(t, result))
}

// TestResultHelpers tests TextResult, ErrorResult and JSONResult.
func TestResultHelpers(t *testing.T) {
	text := TextResult("ok")
	require.False(t, text.IsError)
	require.Equal(t, "ok", resultText(t, text))

	errResult := ErrorResult("bad")
	require.True(t, errResult.IsError)
	require.Equal(t, "bad", resultText(t, errResult))

	payload := map[string]any{"success": true, "n": 1}

	jsonResult, err := JSONResult(payload)
	require.NoError(t, err)
	require.Equal(t, payload, jsonResult.StructuredContent)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, jsonResult)), &decoded))
	require.Equal(t, true, decoded["success"])
	require.InDelta(t, 1, decoded["n"], 0)
}

// TestJSONResult_Unmarshalable tests that encoding failures are returned.
func TestJSONResult_Unmarshalable(t *testing.T) {
	_, err := JSONResult(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

// TestParseArguments tests argument decoding edge cases.
func TestParseArguments(t *testing.T) {
	args, err := ParseArguments(nil)
	require.NoError(t, err)
	require.Empty(t, args)

	args, err = ParseArguments(&mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{}})
	require.NoError(t, err)
	require.Empty(t, args)

	args, err = ParseArguments(&mcpgo.CallToolRequest{
		Params: &mcpgo.CallToolParamsRaw{Arguments: json.RawMessage(`{"a":"b"}`)},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "b"}, args)

	_, err = ParseArguments(&mcpgo.CallToolRequest{
		Params: &mcpgo.CallToolParamsRaw{Arguments: json.RawMessage(`{invalid`)},
	})
	require.Error(t, err)
}
