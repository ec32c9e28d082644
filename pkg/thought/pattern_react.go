package thought

import (
	"fmt"
	"regexp"
	"strings"
)

// Regex patterns for header detection, compiled once. All of them are
// case-insensitive per spec.md §4.2 ("ReAct classic ... regex extraction,
// case-insensitive") — a model that writes "THOUGHT:" or "ActIon:" must
// be recognized the same as canonical casing. Mid-line headers are
// recognized only after a sentence boundary so ordinary prose mentioning
// these words doesn't get misread as a section switch.
var (
	midlineActionPattern      = regexp.MustCompile(`(?i)[.!?][` + "`" + `\s*]*Action:`)
	midlineFinalAnswerPattern = regexp.MustCompile(`(?i)[.!?][` + "`" + `\s*]*Final Answer:`)
	thoughtHeaderPattern      = regexp.MustCompile(`(?i)^(Thought|Reasoning|Analysis):`)
	actionHeaderPattern       = regexp.MustCompile(`(?i)^Action:`)
	actionInputHeaderPattern  = regexp.MustCompile(`(?i)^(Action Input|Arguments):`)
	finalAnswerHeaderPattern  = regexp.MustCompile(`(?i)^(Final Answer|Answer):`)
	thoughtExclusionPattern   = regexp.MustCompile(`(?i)^Thought(:|\s|$)`)
	actionExclusionPattern    = regexp.MustCompile(`(?i)^(Action:|Action Input:)`)
)

// reactSection is the line-scanner's current collection target.
type reactSection int

const (
	sectionNone reactSection = iota
	sectionThought
	sectionAction
	sectionActionInput
	sectionFinalAnswer
)

// pendingAction accumulates one Action/Action Input pair while scanning.
type pendingAction struct {
	name         string
	argLines     []string
	sawArgHeader bool
}

// parseReActClassic is pattern 3: the traditional Thought/Action/Action
// Input/Final Answer line format, generalized to accept more than one
// Action/Action Input pair in sequence (multi-action planning within a
// single response).
func parseReActClassic(text string, raw string) (*Thought, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")

	var thoughtLines []string
	var finalLines []string
	foundFinalAnswer := false
	var actions []*pendingAction
	var current *pendingAction

	section := sectionNone

	finalizeAction := func() {
		if current != nil {
			actions = append(actions, current)
			current = nil
		}
	}

	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" && section == sectionNone {
			continue
		}

		if shouldStopParsing(line) {
			break
		}

		switch {
		case isFinalAnswerHeader(line, foundFinalAnswer):
			finalizeAction()
			section = sectionFinalAnswer
			foundFinalAnswer = true
			content := extractAfter(line, "Final Answer:")
			if content == "" {
				content = extractAfter(line, "Answer:")
			}
			finalLines = []string{content}

		case isThoughtHeader(line):
			finalizeAction()
			section = sectionThought
			if prefix := thoughtHeaderPrefix(line); prefix != "" {
				thoughtLines = append(thoughtLines, extractAfter(line, prefix))
			}

		case isActionHeader(line):
			finalizeAction()
			current = &pendingAction{name: extractAfter(line, "Action:")}
			section = sectionAction

		case isActionInputHeader(line):
			if current == nil {
				current = &pendingAction{}
			}
			current.sawArgHeader = true
			content := extractAfter(line, "Action Input:")
			if content == "" {
				content = extractAfter(line, "Arguments:")
			}
			if content != "" {
				current.argLines = append(current.argLines, content)
			}
			section = sectionActionInput

		default:
			switch section {
			case sectionThought:
				thoughtLines = append(thoughtLines, line)
			case sectionAction:
				if current != nil {
					current.name = strings.TrimSpace(current.name + " " + line)
				}
			case sectionActionInput:
				if current != nil {
					current.argLines = append(current.argLines, line)
				}
			case sectionFinalAnswer:
				finalLines = append(finalLines, line)
			}
		}
	}
	finalizeAction()

	var planned []PlannedAction
	for _, a := range actions {
		name := strings.TrimSpace(a.name)
		if name == "" || !a.sawArgHeader {
			continue
		}
		planned = append(planned, PlannedAction{
			ToolName:  name,
			Arguments: normalizeArguments(strings.TrimSpace(strings.Join(a.argLines, "\n"))),
		})
	}

	thoughtText := strings.TrimSpace(strings.Join(thoughtLines, "\n"))
	finalText := strings.TrimSpace(strings.Join(finalLines, "\n"))

	if len(planned) == 0 && finalText == "" {
		return nil, fmt.Errorf("%w: no Action+Action Input pair or Final Answer found", ErrParseError)
	}

	t := &Thought{
		Reasoning:      thoughtText,
		PlannedActions: planned,
		RawContent:     raw,
	}
	if len(planned) == 0 {
		t.IsFinalAnswer = true
		t.Reasoning = finalText
	}
	return t.enforceInvariant(), nil
}

// thoughtHeaderPrefix returns which reasoning-introducing header a line
// starts with, or "" if none. Thought/Reasoning/Analysis are treated as
// interchangeable reasoning markers, matched regardless of case.
func thoughtHeaderPrefix(line string) string {
	for _, p := range []string{"Thought:", "Reasoning:", "Analysis:"} {
		if len(line) >= len(p) && strings.EqualFold(line[:len(p)], p) {
			return p
		}
	}
	return ""
}

func isThoughtHeader(line string) bool {
	return thoughtHeaderPattern.MatchString(line) ||
		strings.EqualFold(line, "Thought") || strings.EqualFold(line, "Reasoning") || strings.EqualFold(line, "Analysis")
}

func isActionHeader(line string) bool {
	return actionHeaderPattern.MatchString(line) || midlineActionPattern.MatchString(line)
}

func isActionInputHeader(line string) bool {
	return actionInputHeaderPattern.MatchString(line)
}

func isFinalAnswerHeader(line string, alreadyFound bool) bool {
	if alreadyFound {
		return false
	}
	if finalAnswerHeaderPattern.MatchString(line) {
		return true
	}
	if thoughtExclusionPattern.MatchString(line) || actionExclusionPattern.MatchString(line) {
		return false
	}
	return midlineFinalAnswerPattern.MatchString(line)
}

// shouldStopParsing detects hallucinated continuation text a model
// sometimes emits after its own answer, e.g. a fabricated "Observation:"
// pretending to be the tool result the engine hasn't produced yet.
func shouldStopParsing(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "[Based on") {
		return true
	}
	if strings.HasPrefix(line, "Observation:") {
		if strings.Contains(line, "Please specify") || strings.Contains(line, "what Action you want to take") {
			return false
		}
		if strings.Contains(line, "Error in reasoning") {
			return false
		}
		return true
	}
	return false
}

// extractAfter returns the text following the first case-insensitive
// occurrence of marker in line. Matching case-insensitively keeps this in
// step with the header regexes above — a line starting "ACTION: foo"
// still yields "foo".
func extractAfter(line, marker string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(marker))
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+len(marker):])
}
