package engine_test

import (
	"context"
	"time"

	"github.com/loopworks/reactor/pkg/llm"
	"github.com/loopworks/reactor/pkg/tool"
)

// scriptedLLMClient replays a fixed sequence of text responses, one per
// call to Generate. The last entry repeats for any call beyond the end
// of the script, so tests that exhaust max iterations don't need to
// pad the script out to the ceiling.
type scriptedLLMClient struct {
	responses []string
	calls     int
	prompts   []string
}

func newScriptedLLMClient(responses ...string) *scriptedLLMClient {
	return &scriptedLLMClient{responses: responses}
}

func (c *scriptedLLMClient) Generate(ctx context.Context, input *llm.GenerateInput) (<-chan llm.Chunk, error) {
	idx := c.calls
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	c.calls++

	var prompt string
	for _, m := range input.Messages {
		if m.Role == llm.RoleUser {
			prompt = m.Content
		}
	}
	c.prompts = append(c.prompts, prompt)

	ch := make(chan llm.Chunk, 1)
	ch <- &llm.TextChunk{Content: c.responses[idx]}
	close(ch)
	return ch, nil
}

func (c *scriptedLLMClient) Close() error { return nil }

// erroringLLMClient always surfaces an ErrorChunk, simulating a
// provider-side failure the engine must turn into a run-level error.
type erroringLLMClient struct{ message string }

func (c *erroringLLMClient) Generate(context.Context, *llm.GenerateInput) (<-chan llm.Chunk, error) {
	ch := make(chan llm.Chunk, 1)
	ch <- &llm.ErrorChunk{Message: c.message}
	close(ch)
	return ch, nil
}

func (c *erroringLLMClient) Close() error { return nil }

// cancelingLLMClient wraps a scriptedLLMClient and synchronously invokes
// cancel before returning the response for a chosen call index, giving
// tests a deterministic way to cancel a run between two iterations
// without relying on wall-clock timing.
type cancelingLLMClient struct {
	*scriptedLLMClient
	cancelOnCall int
	cancel       func()
}

func (c *cancelingLLMClient) Generate(ctx context.Context, input *llm.GenerateInput) (<-chan llm.Chunk, error) {
	if c.calls == c.cancelOnCall {
		c.cancel()
	}
	return c.scriptedLLMClient.Generate(ctx, input)
}

// fakeToolExecutor returns a scripted result per tool name, falling
// back to a generic success when no override is configured.
type fakeToolExecutor struct {
	results map[string]*tool.Result
	calls   []tool.Call
}

func newFakeToolExecutor() *fakeToolExecutor {
	return &fakeToolExecutor{results: make(map[string]*tool.Result)}
}

func (f *fakeToolExecutor) withResult(name string, r *tool.Result) *fakeToolExecutor {
	f.results[name] = r
	return f
}

func (f *fakeToolExecutor) Execute(_ context.Context, call tool.Call, _ time.Duration) (*tool.Result, error) {
	f.calls = append(f.calls, call)
	if r, ok := f.results[call.Name]; ok {
		out := *r
		out.CallID = call.ID
		return &out, nil
	}
	return &tool.Result{CallID: call.ID, Success: true, Output: "ok"}, nil
}

func (f *fakeToolExecutor) ListTools(context.Context) ([]tool.Definition, error) { return nil, nil }

func (f *fakeToolExecutor) Clone() tool.Executor { return f }
