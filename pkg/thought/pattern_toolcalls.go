package thought

import (
	"strings"

	"github.com/loopworks/reactor/pkg/llm"
)

// parseToolCallsInline is pattern 1: when the LLM framework has already
// surfaced structured tool calls (llm.ToolCall), those are authoritative
// and the response text is never parsed for Action/Action Input markers.
// Any free text accompanying the tool calls becomes the reasoning.
func parseToolCallsInline(text string, toolCalls []llm.ToolCall, raw string) (*Thought, error) {
	if len(toolCalls) == 0 {
		return nil, errNotApplicable
	}

	actions := make([]PlannedAction, 0, len(toolCalls))
	for _, tc := range toolCalls {
		actions = append(actions, PlannedAction{
			ToolName:  tc.Name,
			Arguments: tc.Arguments,
		})
	}

	return (&Thought{
		Reasoning:      strings.TrimSpace(text),
		PlannedActions: actions,
		RawContent:     raw,
	}).enforceInvariant(), nil
}
