package engine

import (
	"context"

	"github.com/loopworks/reactor/pkg/observe"
	"github.com/loopworks/reactor/pkg/session"
	"github.com/loopworks/reactor/pkg/thought"
	"github.com/loopworks/reactor/pkg/tool"
	"golang.org/x/sync/errgroup"
)

// executeActions runs every planned action through the Tool Executor and
// returns their Observations in planned-action order, regardless of
// completion order in parallel mode. A single action always runs
// sequentially — fan-out only applies to batches of two or more.
func (e *Engine) executeActions(ctx context.Context, actions []thought.PlannedAction) []observe.Observation {
	if len(actions) == 1 || !e.cfg.ParallelToolExecution {
		return e.executeSequential(ctx, actions)
	}
	return e.executeParallel(ctx, actions)
}

func (e *Engine) executeSequential(ctx context.Context, actions []thought.PlannedAction) []observe.Observation {
	observations := make([]observe.Observation, len(actions))
	for i, pa := range actions {
		sessAction := session.NewAction(pa.ToolName, pa.Arguments)
		_ = sessAction.Start()

		call := tool.Call{ID: newCallID(), Name: pa.ToolName, Arguments: pa.Arguments}
		result, err := e.executor.Execute(ctx, call, e.cfg.ToolTimeout)
		observations[i] = e.toObservation(call, result, err, sessAction)
	}
	return observations
}

func (e *Engine) executeParallel(ctx context.Context, actions []thought.PlannedAction) []observe.Observation {
	observations := make([]observe.Observation, len(actions))
	g, gctx := errgroup.WithContext(ctx)

	for i, pa := range actions {
		i, pa := i, pa
		g.Go(func() error {
			call := tool.Call{ID: newCallID(), Name: pa.ToolName, Arguments: pa.Arguments}
			result, err := e.executor.Execute(gctx, call, e.cfg.ToolTimeout)
			observations[i] = e.toObservation(call, result, err, nil)
			return nil
		})
	}

	// Errors from individual tool calls never reach here — Execute's
	// contract converts them into failed Results. A non-nil error would
	// only come from the task infrastructure itself; ignored since every
	// Go func above always returns nil.
	_ = g.Wait()

	return observations
}

// toObservation converts one tool call's raw result into a processed
// Observation, mirroring the result onto the Session Action record when
// one is supplied (sequential mode only — parallel mode skips per-action
// status tracking since concurrent writers would race on it).
func (e *Engine) toObservation(call tool.Call, result *tool.Result, err error, sessAction *session.Action) observe.Observation {
	if err != nil {
		result = &tool.Result{CallID: call.ID, Success: false, Error: err.Error()}
	}
	if sessAction != nil {
		if result.Success {
			_ = sessAction.Complete(session.ActionResult{
				Success: true, Output: toString(result.Output), Duration: result.Duration.Milliseconds(),
			})
		} else {
			_ = sessAction.Fail(session.ActionResult{
				Success: false, Error: result.Error, Duration: result.Duration.Milliseconds(),
			})
		}
	}
	return e.observer.Process(result, call)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
