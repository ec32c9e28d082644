package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectHappyPath(t *testing.T) {
	ch := make(chan Chunk, 4)
	ch <- &TextChunk{Content: "hello "}
	ch <- &TextChunk{Content: "world"}
	ch <- &ToolCallChunk{CallID: "1", Name: "search", Arguments: json.RawMessage(`{}`)}
	ch <- &UsageChunk{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
	close(ch)

	resp, err := Collect(ch)
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Text)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "search", resp.ToolCalls[0].Name)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCollectReturnsFirstErrorChunk(t *testing.T) {
	ch := make(chan Chunk, 2)
	ch <- &TextChunk{Content: "partial"}
	ch <- &ErrorChunk{Message: "provider unavailable", Retryable: true}
	close(ch)

	resp, err := Collect(ch)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "provider unavailable")
}

func TestCollectDrainsStreamAfterError(t *testing.T) {
	ch := make(chan Chunk, 3)
	ch <- &ErrorChunk{Message: "boom"}
	ch <- &TextChunk{Content: "still sent"}
	close(ch)

	_, err := Collect(ch)
	require.Error(t, err)
}
