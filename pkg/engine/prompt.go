package engine

import (
	"fmt"
	"strings"

	reactctx "github.com/loopworks/reactor/pkg/context"
	"github.com/loopworks/reactor/pkg/session"
)

const conclusionPrompt = "Maximum iterations reached. You must conclude now with a final answer based " +
	"on everything gathered so far. Respond with 'Final Answer: <your answer>'. Do not call any tools."

// buildPrompt assembles the deterministic prompt layout: system preamble,
// gathered context, prior-iteration history, the user query, and a
// closing instruction.
func buildPrompt(userQuery string, gathered reactctx.Gathered, history []session.IterationRecord, includeHistory bool) string {
	var b strings.Builder

	b.WriteString("You are a helpful AI assistant with access to tools.\n")

	if len(gathered.Chunks) > 0 {
		b.WriteString("\n# Context\n")
		b.WriteString(gathered.FormatForPrompt())
	}

	if includeHistory && len(history) > 0 {
		b.WriteString("\n# Previous Iterations\n")
		for _, rec := range history {
			fmt.Fprintf(&b, "Iteration %d: %s\n", rec.Number, rec.ThoughtText)
			if len(rec.ActionsTaken) > 0 {
				fmt.Fprintf(&b, "Actions: %s\n", strings.Join(rec.ActionsTaken, ", "))
			}
		}
	}

	b.WriteString("\n# User Query\n")
	b.WriteString(userQuery)
	b.WriteString("\n\nThink step by step and use tools when appropriate.\n")
	b.WriteString("If you have a final answer, respond with 'Final Answer: <your answer>'.")

	return b.String()
}
