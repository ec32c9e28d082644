package llm

import "fmt"

// Response is the fully-collected result of draining a Chunk stream.
type Response struct {
	Text      string
	Thinking  string
	ToolCalls []ToolCall
	Usage     UsageChunk
}

// Collect drains a chunk channel into a complete Response. Returns an
// error if an ErrorChunk is received — the stream is still drained to
// completion first so the producer goroutine isn't left blocked on send.
func Collect(stream <-chan Chunk) (*Response, error) {
	resp := &Response{}
	var streamErr error

	for chunk := range stream {
		switch c := chunk.(type) {
		case *TextChunk:
			resp.Text += c.Content
		case *ThinkingChunk:
			resp.Thinking += c.Content
		case *ToolCallChunk:
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: c.CallID, Name: c.Name, Arguments: c.Arguments})
		case *UsageChunk:
			resp.Usage = *c
		case *ErrorChunk:
			if streamErr == nil {
				streamErr = fmt.Errorf("llm provider error: %s", c.Message)
			}
		}
	}
	if streamErr != nil {
		return nil, streamErr
	}
	return resp, nil
}
