// Package message folds the gemini CLI's stream-json output into a tool result.
//
// Each output line is expected to hold one JSON object. Assistant message
// content is concatenated, the most recent session_id is kept, and lines that
// are not valid JSON are recorded as annotations rather than failing the
// invocation.
package message
