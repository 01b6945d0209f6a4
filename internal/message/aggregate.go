package message

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/wagiedev/gemini-mcp-go/internal/errors"
)

// errNotObject reports a line that is valid JSON but not an object.
var errNotObject = stderrors.New("line is not a JSON object")

// Aggregate consumes lines and folds them into a Result.
//
// A launch failure from the stream is returned as the error with a nil
// Result. Any later stream error ends aggregation and is kept in Result.Err.
// A line that is valid JSON but not an object also ends aggregation, which
// stops the stream and terminates the CLI.
func Aggregate(log *slog.Logger, lines iter.Seq2[string, error]) (*Result, error) {
	log = log.With("component", "message_aggregator")

	res := &Result{}
	seen := 0

	for line, err := range lines {
		if err != nil {
			if seen == 0 {
				return nil, err
			}

			log.Warn("Line stream ended with error", "error", err)
			res.Err = err

			break
		}

		seen++

		event, err := decode(line)
		if err != nil {
			if stderrors.Is(err, errNotObject) {
				log.Warn("Unexpected non-object event, stopping", "line", line)
				res.Notes += fmt.Sprintf("\n\n[unexpected error] Unexpected error: %v. Line: %q", err, line)

				break
			}

			log.Debug("Failed to decode CLI line", "error", err, "line", line)

			decodeErr := &errors.CLIJSONDecodeError{RawData: line, Err: err}
			res.DecodeErrors = append(res.DecodeErrors, decodeErr)
			res.Notes += "\n\n[json decode error] " + line

			continue
		}

		res.AllMessages = append(res.AllMessages, event)
		apply(log, res, event)
	}

	log.Debug("Aggregated CLI output",
		"line_count", seen,
		"event_count", len(res.AllMessages),
		"decode_errors", len(res.DecodeErrors),
		"has_session_id", res.HasSessionID,
	)

	return res, nil
}

// decode parses one line into a JSON object.
func decode(line string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &v); err != nil {
		return nil, err
	}

	event, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}

	return event, nil
}

// apply updates res from a single decoded event.
func apply(log *slog.Logger, res *Result, event map[string]any) {
	typ, _ := event["type"].(string)
	role, _ := event["role"].(string)

	if typ == TypeMessage && role == RoleAssistant {
		content, _ := event["content"].(string)

		if strings.Contains(content, DeprecationNotice) {
			log.Debug("Skipping --prompt deprecation notice")
		} else {
			res.AgentMessages += content
		}
	}

	if sid, ok := event["session_id"]; ok && sid != nil {
		res.SessionID = stringify(sid)
		res.HasSessionID = true
	}
}

// stringify renders a JSON scalar as text. Strings are returned unquoted.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(data)
}
