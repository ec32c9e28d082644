// Package llm defines the engine's contract with the LLM transport. The
// transport itself — the actual provider integration — is an external
// collaborator; this package only describes the shape of a request and a
// streamed response.
package llm

import (
	"context"
	"encoding/json"

	"github.com/loopworks/reactor/pkg/tool"
)

// Conversation message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn in the conversation sent to the LLM.
type Message struct {
	Role    string
	Content string
}

// ToolCall is a tool invocation surfaced directly by the LLM framework
// (as opposed to one recovered by parsing free text). When non-empty,
// the Thought Parser treats these as authoritative and skips text parsing
// entirely.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// GenerateInput is a single LLM call request.
type GenerateInput struct {
	Messages []Message
	Tools    []tool.Definition // nil when the caller relies on text-based tool calling
}

// ChunkType identifies the kind of streaming chunk.
type ChunkType string

const (
	ChunkTypeText     ChunkType = "text"
	ChunkTypeThinking ChunkType = "thinking"
	ChunkTypeToolCall ChunkType = "tool_call"
	ChunkTypeUsage    ChunkType = "usage"
	ChunkTypeError    ChunkType = "error"
)

// Chunk is the interface for all streaming chunk types.
type Chunk interface {
	chunkType() ChunkType
}

// TextChunk is a chunk of the LLM's text response.
type TextChunk struct{ Content string }

// ThinkingChunk is a chunk of the LLM's internal reasoning, delivered
// separately from the text response by providers that support it.
type ThinkingChunk struct{ Content string }

// ToolCallChunk signals the LLM wants to call a tool.
type ToolCallChunk struct {
	CallID, Name string
	Arguments    json.RawMessage
}

// UsageChunk reports token consumption for the call.
type UsageChunk struct{ InputTokens, OutputTokens, TotalTokens int }

// ErrorChunk signals an error from the LLM provider.
type ErrorChunk struct {
	Message   string
	Retryable bool
}

func (c *TextChunk) chunkType() ChunkType     { return ChunkTypeText }
func (c *ThinkingChunk) chunkType() ChunkType { return ChunkTypeThinking }
func (c *ToolCallChunk) chunkType() ChunkType { return ChunkTypeToolCall }
func (c *UsageChunk) chunkType() ChunkType    { return ChunkTypeUsage }
func (c *ErrorChunk) chunkType() ChunkType    { return ChunkTypeError }

// Client is the engine's view of an LLM transport. Generate returns a
// channel of Chunks and must close it when the stream completes;
// mid-stream provider errors are delivered as an ErrorChunk rather than a
// channel panic.
type Client interface {
	Generate(ctx context.Context, input *GenerateInput) (<-chan Chunk, error)
	Close() error
}
