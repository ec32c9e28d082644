package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type slowExecutor struct {
	delay time.Duration
}

func (s *slowExecutor) Execute(ctx context.Context, call Call, _ time.Duration) (*Result, error) {
	select {
	case <-time.After(s.delay):
		return &Result{CallID: call.ID, Success: true, Output: "done"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowExecutor) ListTools(_ context.Context) ([]Definition, error) { return nil, nil }
func (s *slowExecutor) Clone() Executor                                   { return s }

func TestWithTimeoutProducesTimeoutResultNotError(t *testing.T) {
	exec := WithTimeout(&slowExecutor{delay: 50 * time.Millisecond}, 5*time.Millisecond)
	result, err := exec.Execute(context.Background(), Call{ID: "1", Name: "slow"}, 0)
	require.NoError(t, err)
	require.True(t, result.TimedOut)
	require.False(t, result.Success)
}

func TestWithTimeoutPassesThroughFastCalls(t *testing.T) {
	exec := WithTimeout(&slowExecutor{delay: time.Millisecond}, 50*time.Millisecond)
	result, err := exec.Execute(context.Background(), Call{ID: "1", Name: "fast"}, 0)
	require.NoError(t, err)
	require.False(t, result.TimedOut)
	require.True(t, result.Success)
}

func TestWithTimeoutPerCallOverridesWhenSmaller(t *testing.T) {
	exec := WithTimeout(&slowExecutor{delay: 20 * time.Millisecond}, time.Second)
	result, err := exec.Execute(context.Background(), Call{ID: "1", Name: "slow"}, 5*time.Millisecond)
	require.NoError(t, err)
	require.True(t, result.TimedOut)
}
