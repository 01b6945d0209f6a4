package subprocess

import "github.com/tidwall/gjson"

// TurnCompletedType is the event type the CLI emits when a turn ends.
const TurnCompletedType = "turn.completed"

// IsTurnCompleted reports whether line is a JSON object whose type is
// "turn.completed". Lines that are not JSON objects report false.
func IsTurnCompleted(line string) bool {
	if !gjson.Valid(line) {
		return false
	}

	event := gjson.Parse(line)
	if !event.IsObject() {
		return false
	}

	typ := event.Get("type")

	return typ.Type == gjson.String && typ.Str == TurnCompletedType
}
