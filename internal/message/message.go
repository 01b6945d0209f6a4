package message

import (
	"strings"

	"github.com/wagiedev/gemini-mcp-go/internal/errors"
)

// DeprecationNotice is emitted by newer gemini releases as assistant content
// when the prompt is passed with --prompt. It is not part of the reply.
const DeprecationNotice = "The --prompt (-p) flag has been deprecated and will be removed in a future version. " +
	"Please use a positional argument for your prompt. See gemini --help for more information.\n"

// Event type and role values the aggregator reacts to.
const (
	TypeMessage   = "message"
	RoleAssistant = "assistant"
)

// Result is the aggregate of one gemini invocation's output.
type Result struct {
	// SessionID is the last non-null session_id seen in the stream.
	SessionID string

	// HasSessionID reports whether any session_id was seen.
	HasSessionID bool

	// AgentMessages is the concatenated assistant content.
	AgentMessages string

	// AllMessages holds every decoded event in stream order.
	AllMessages []map[string]any

	// DecodeErrors holds lines that were not valid JSON.
	DecodeErrors []*errors.CLIJSONDecodeError

	// Notes accumulates per-line annotations reported with a failure.
	Notes string

	// Err is the reason the stream could not be consumed to the end, if any.
	Err error
}

// Success reports whether the invocation produced a session and a reply.
func (r *Result) Success() bool {
	return r.Err == nil && r.HasSessionID && r.AgentMessages != ""
}

// Error describes why the invocation failed. It is empty on success.
func (r *Result) Error() string {
	switch {
	case r.Err != nil:
		return joinNotes(r.Err.Error(), r.Notes)
	case !r.HasSessionID:
		return errors.ErrMissingSessionID.Error() + " \n\n" + r.Notes
	case r.AgentMessages == "":
		return errors.ErrNoAgentMessages.Error() + " \n\n " + r.Notes
	default:
		return ""
	}
}

// Payload shapes the result for the tool caller. all_messages is included
// when includeAll is set, on success and on failure.
func (r *Result) Payload(includeAll bool) map[string]any {
	var payload map[string]any

	if r.Success() {
		payload = map[string]any{
			"success":        true,
			"SESSION_ID":     r.SessionID,
			"agent_messages": r.AgentMessages,
		}
	} else {
		payload = map[string]any{
			"success": false,
			"error":   r.Error(),
		}
	}

	if includeAll {
		all := r.AllMessages
		if all == nil {
			all = []map[string]any{}
		}

		payload["all_messages"] = all
	}

	return payload
}

func joinNotes(msg, notes string) string {
	if notes == "" {
		return msg
	}

	return msg + "\n\n" + strings.TrimLeft(notes, "\n")
}
