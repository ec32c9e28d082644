package engine

import (
	"context"

	"github.com/loopworks/reactor/pkg/session"
)

// forceConclusion runs once the iteration ceiling is reached without a
// final answer: one bounded extra LLM call, tool calling disabled,
// explicitly asking the model to conclude. If the model's response is
// recognized by the Thought Parser as a final answer, that promotes the
// run to TaskComplete; otherwise the run still ends as
// MaxIterationsReached, but the raw text is preserved on the outcome so
// callers can inspect what the model last said.
func (e *Engine) forceConclusion(ctx context.Context) IterationOutcome {
	if err := e.sess.TransitionTo(session.PhaseThinking); err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}
	e.emitProgress(ctx, "Concluding", 1.0)

	gathered := e.gatherContext(ctx)
	prompt := buildPrompt(e.userQuery, gathered, e.sess.History(), e.cfg.IncludeHistoryInContext) +
		"\n\n" + conclusionPrompt

	th, err := e.callAndParse(ctx, prompt, nil)
	if err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}

	if th.IsFinalAnswer && th.Reasoning != "" {
		return IterationOutcome{Kind: OutcomeComplete, FinalAnswer: th.Reasoning}
	}

	// The model didn't use a recognizable final-answer shape even when
	// explicitly asked. Surface the raw reasoning for introspection, but
	// don't promote it — terminated_reason stays MaxIterationsReached.
	return IterationOutcome{Kind: OutcomeError, Err: errMaxIterationsNoFinalAnswer, FinalAnswer: th.Reasoning}
}
