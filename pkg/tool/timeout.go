package tool

import (
	"context"
	"errors"
	"time"
)

// WithTimeout wraps an Executor so every Execute call is bounded by the
// given duration on top of whatever the caller's context already enforces.
// On expiry it returns a Result{TimedOut: true} rather than propagating
// context.DeadlineExceeded — tool timeouts are never fatal to the engine.
func WithTimeout(inner Executor, d time.Duration) Executor {
	return &timeoutExecutor{inner: inner, timeout: d}
}

type timeoutExecutor struct {
	inner   Executor
	timeout time.Duration
}

func (e *timeoutExecutor) Execute(ctx context.Context, call Call, perCall time.Duration) (*Result, error) {
	d := e.timeout
	if perCall > 0 && perCall < d {
		d = perCall
	}
	if d <= 0 {
		return e.inner.Execute(ctx, call, 0)
	}

	callCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	start := time.Now()
	result, err := e.inner.Execute(callCtx, call, 0)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return &Result{CallID: call.ID, Success: false, TimedOut: true, Duration: time.Since(start)}, nil
		}
		return nil, err
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &Result{CallID: call.ID, Success: false, TimedOut: true, Duration: time.Since(start)}, nil
	}
	return result, nil
}

func (e *timeoutExecutor) ListTools(ctx context.Context) ([]Definition, error) {
	return e.inner.ListTools(ctx)
}

func (e *timeoutExecutor) Clone() Executor {
	return &timeoutExecutor{inner: e.inner.Clone(), timeout: e.timeout}
}
