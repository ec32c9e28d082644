package main

import (
	"context"
	"strings"

	"github.com/loopworks/reactor/pkg/llm"
)

// demoLLMClient is a canned stand-in for a real LLM transport — it lets
// the demo server exercise a full Think-Act-Observe-Think cycle without
// a network call. A real deployment swaps this for a provider-backed
// llm.Client; the engine never knows the difference.
//
// The strategy is purely text-driven: call one tool on the first
// iteration, then conclude once the prompt shows prior-iteration history
// (i.e. the tool's observation already made it back into context).
type demoLLMClient struct {
	toolName string
}

func newDemoLLMClient(toolName string) *demoLLMClient {
	return &demoLLMClient{toolName: toolName}
}

func (c *demoLLMClient) Generate(ctx context.Context, input *llm.GenerateInput) (<-chan llm.Chunk, error) {
	prompt := lastUserMessage(input.Messages)

	ch := make(chan llm.Chunk, 1)
	go func() {
		defer close(ch)

		var text string
		if strings.Contains(prompt, "# Previous Iterations") {
			text = "Final Answer: Based on the tool output above, here is my answer to: " + extractQuery(prompt)
		} else {
			text = "Thought: I should gather more information first.\n" +
				"Action: " + c.toolName + "\n" +
				"Action Input: {\"query\": \"" + extractQuery(prompt) + "\"}"
		}

		select {
		case ch <- &llm.TextChunk{Content: text}:
		case <-ctx.Done():
		}
	}()
	return ch, nil
}

func (c *demoLLMClient) Close() error { return nil }

func lastUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func extractQuery(prompt string) string {
	const marker = "# User Query\n"
	idx := strings.Index(prompt, marker)
	if idx < 0 {
		return ""
	}
	rest := prompt[idx+len(marker):]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
