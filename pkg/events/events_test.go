package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopPublisherDiscardsEverything(t *testing.T) {
	var p Publisher = NoopPublisher{}
	require.NoError(t, p.PublishProgress(context.Background(), ProgressPayload{SessionID: "s1"}))
	require.NoError(t, p.PublishTool(context.Background(), ToolPayload{SessionID: "s1"}))
	require.NoError(t, p.PublishCompletion(context.Background(), CompletionPayload{SessionID: "s1"}))
}

// recordingPublisher is a minimal fake, kept here as the package's own
// sanity check that the interface is trivially implementable by a caller.
type recordingPublisher struct {
	progress []ProgressPayload
}

func (r *recordingPublisher) PublishProgress(_ context.Context, p ProgressPayload) error {
	r.progress = append(r.progress, p)
	return nil
}
func (r *recordingPublisher) PublishTool(context.Context, ToolPayload) error { return nil }
func (r *recordingPublisher) PublishCompletion(context.Context, CompletionPayload) error {
	return nil
}

func TestRecordingPublisherImplementsInterface(t *testing.T) {
	var p Publisher = &recordingPublisher{}
	require.NoError(t, p.PublishProgress(context.Background(), ProgressPayload{Message: "Starting"}))
	rp := p.(*recordingPublisher)
	require.Len(t, rp.progress, 1)
	require.Equal(t, "Starting", rp.progress[0].Message)
}
