// Package events defines the narrow event-bus contract the engine
// publishes progress to. Delivery, fan-out to a UI, and cross-process
// wiring are an external collaborator's concern; this package only
// describes the payload shapes and a minimal in-process Publisher a
// caller can swap out.
package events

import "context"

// Event type names for the payloads in this package. Publisher dispatches
// on the method called, so nothing in pkg/engine refers to these names.
const (
	EventPhaseEntered   = "phase.entered"
	EventIterationStart = "iteration.started"
	EventToolStarted    = "tool.started"
	EventToolCompleted  = "tool.completed"
	EventSessionDone    = "session.completed"
)

// ProgressPayload is published every time the engine enters a new phase.
// PercentComplete is a monotonically non-decreasing approximation of
// iteration / max_iterations * 100.
type ProgressPayload struct {
	SessionID       string
	Phase           string
	Iteration       int
	MaxIterations   int
	PercentComplete float64
	Message         string
}

// ToolPayload describes a planned action starting or finishing execution.
// pkg/engine does not call PublishTool; only progress and completion
// events are published by a Run.
type ToolPayload struct {
	SessionID  string
	ToolCallID string
	ToolName   string
	Success    bool
	TimedOut   bool
}

// CompletionPayload is published once, when the engine's run terminates.
type CompletionPayload struct {
	SessionID          string
	TerminationReason  string
	TotalDuration      float64
	TotalToolsExecuted int
}

// Publisher is the engine's view of the event bus. Implementations are
// expected to be non-blocking and best-effort: a publish failure must
// never abort the engine's run.
type Publisher interface {
	PublishProgress(ctx context.Context, payload ProgressPayload) error
	PublishTool(ctx context.Context, payload ToolPayload) error
	PublishCompletion(ctx context.Context, payload CompletionPayload) error
}

// NoopPublisher discards every event. It's the Publisher the engine uses
// when the caller doesn't care about progress events.
type NoopPublisher struct{}

func (NoopPublisher) PublishProgress(context.Context, ProgressPayload) error     { return nil }
func (NoopPublisher) PublishTool(context.Context, ToolPayload) error             { return nil }
func (NoopPublisher) PublishCompletion(context.Context, CompletionPayload) error { return nil }
