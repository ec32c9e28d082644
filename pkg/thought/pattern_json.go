package thought

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// thoughtKeys and finalAnswerKeys list the accepted aliases for a JSON
// payload's reasoning and conclusion fields, in priority order — the
// first key present wins.
var thoughtKeys = []string{"thought", "reasoning", "analysis"}
var finalAnswerKeys = []string{"final_answer", "is_final"}

// parseJSONStructured is pattern 2: the response is (or contains) a single
// JSON object describing the thought directly, e.g.
//
//	{"thought": "...", "action": "search", "arguments": {...}}
//
// A fenced ```json block takes priority over a bare leading object so a
// model that wraps its JSON in markdown still parses cleanly.
func parseJSONStructured(text string, raw string) (*Thought, error) {
	candidate, ok := extractJSONCandidate(text)
	if !ok {
		return nil, errNotApplicable
	}

	var obj map[string]any
	dec := json.NewDecoder(strings.NewReader(candidate))
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONError, err)
	}

	reasoning, hasReasoning := firstStringKey(obj, thoughtKeys)
	if !hasReasoning {
		return nil, fmt.Errorf("%w: no thought-equivalent field present", ErrParseError)
	}

	t := &Thought{
		Reasoning:  reasoning,
		RawContent: raw,
	}

	if conf, ok := obj["confidence"]; ok {
		if f, ok := conf.(float64); ok {
			t.Confidence = &f
		}
	}

	if actionName, ok := obj["action"].(string); ok && strings.TrimSpace(actionName) != "" {
		pa := PlannedAction{ToolName: strings.TrimSpace(actionName)}
		if desc, ok := obj["description"].(string); ok {
			pa.Description = desc
		}
		if args, ok := obj["arguments"]; ok {
			if b, err := json.Marshal(args); err == nil {
				pa.Arguments = b
			}
		}
		t.PlannedActions = append(t.PlannedActions, pa)
	}

	for _, key := range finalAnswerKeys {
		if v, ok := obj[key]; ok {
			if b, ok := v.(bool); ok {
				t.IsFinalAnswer = b
				break
			}
		}
	}

	return t.enforceInvariant(), nil
}

// extractJSONCandidate finds the JSON text a response is carrying, if any.
// It never reports "applicable" for text with no JSON markers at all —
// that's left to the ReAct-classic and free-form patterns.
func extractJSONCandidate(text string) (string, bool) {
	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed, true
	}
	return "", false
}

func firstStringKey(obj map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
