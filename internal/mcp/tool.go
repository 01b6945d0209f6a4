package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolName is the name the gemini tool is registered under.
const ToolName = "gemini"

const toolDescription = `Invokes the Gemini CLI to execute AI-driven tasks, returning structured JSON events and a session identifier for conversation continuity.

**Return structure:**
    - ` + "`success`" + `: boolean indicating execution status
    - ` + "`SESSION_ID`" + `: unique identifier for resuming this conversation in future calls
    - ` + "`agent_messages`" + `: concatenated assistant response text
    - ` + "`all_messages`" + `: (optional) complete array of JSON events when ` + "`return_all_messages=True`" + `
    - ` + "`error`" + `: error description when ` + "`success=False`" + `

**Best practices:**
    - Always capture and reuse ` + "`SESSION_ID`" + ` for multi-turn interactions
    - Enable ` + "`sandbox`" + ` mode when file modifications should be isolated
    - Use ` + "`return_all_messages`" + ` only when detailed execution traces are necessary (increases payload size)
    - Only pass ` + "`model`" + ` when the user has explicitly requested a specific model`

// Arguments are the gemini tool inputs.
type Arguments struct {
	Prompt            *string `json:"PROMPT"`
	Cd                *string `json:"cd"`
	Sandbox           bool    `json:"sandbox"`
	SessionID         string  `json:"SESSION_ID"`
	ReturnAllMessages bool    `json:"return_all_messages"`
	Model             string  `json:"model"`
}

// GeminiTool returns the tool definition for the gemini CLI.
func GeminiTool() *mcp.Tool {
	tool := NewTool(ToolName, toolDescription, geminiInputSchema())
	tool.Meta = mcp.Meta{"version": "0.0.0", "author": "guda.studio"}

	return tool
}

func geminiInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"PROMPT": {
				Type:        "string",
				Description: "Instruction for the task to send to gemini.",
			},
			"cd": {
				Type:        "string",
				Description: "Set the workspace root for gemini before executing the task.",
			},
			"sandbox": {
				Type:        "boolean",
				Description: "Run in sandbox mode. Defaults to `False`.",
				Default:     json.RawMessage(`false`),
			},
			"SESSION_ID": {
				Type:        "string",
				Description: "Resume the specified session of the gemini. Defaults to empty string, start a new session.",
				Default:     json.RawMessage(`""`),
			},
			"return_all_messages": {
				Type: "boolean",
				Description: "Return all messages (e.g. reasoning, tool calls, etc.) from the gemini session. " +
					"Set to `False` by default, only the agent's final reply message is returned.",
				Default: json.RawMessage(`false`),
			},
			"model": {
				Type: "string",
				Description: "The model to use for the gemini session. " +
					"This parameter is strictly prohibited unless explicitly specified by the user.",
				Default: json.RawMessage(`""`),
			},
		},
		Required: []string{"PROMPT", "cd"},
	}
}

// parseArguments decodes and validates the gemini tool inputs.
func parseArguments(req *mcp.CallToolRequest) (*Arguments, error) {
	args := &Arguments{}

	if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, args); err != nil {
			return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
		}
	}

	if args.Prompt == nil {
		return nil, fmt.Errorf("missing required argument %q", "PROMPT")
	}

	if args.Cd == nil {
		return nil, fmt.Errorf("missing required argument %q", "cd")
	}

	return args, nil
}
