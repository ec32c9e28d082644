package thought

import (
	"encoding/json"
	"regexp"
	"strings"
)

var finalAnswerRegex = regexp.MustCompile(`(?i)(Final Answer|Answer):`)

// parseFreeForm is pattern 4: the text matches none of the structured
// formats. It never fails — the whole response becomes the reasoning and
// no action is planned. It still honors a bare Final-Answer marker
// anywhere in the text, since even unstructured prose sometimes ends
// with one.
func parseFreeForm(text, raw string) (*Thought, error) {
	return &Thought{
		Reasoning:     strings.TrimSpace(text),
		IsFinalAnswer: finalAnswerRegex.MatchString(text),
		RawContent:    raw,
	}, nil
}

// normalizeArguments turns the raw captured text of an Action Input /
// Arguments section into a json.RawMessage. Text that already parses as
// JSON is kept as-is (compacted); anything else is wrapped as a JSON
// string so callers never have to special-case non-JSON tool arguments.
func normalizeArguments(raw string) json.RawMessage {
	if raw == "" {
		return json.RawMessage("{}")
	}
	var js json.RawMessage
	if err := json.Unmarshal([]byte(raw), &js); err == nil {
		return js
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}
