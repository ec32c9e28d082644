// Package engine orchestrates the Think-Act-Observe loop: it drives
// Session State through its phases, calls the LLM, parses the response
// into a Thought, executes any planned actions through the Tool
// Executor, and folds the results back into accumulated context.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	reactctx "github.com/loopworks/reactor/pkg/context"
	"github.com/loopworks/reactor/pkg/events"
	"github.com/loopworks/reactor/pkg/llm"
	"github.com/loopworks/reactor/pkg/observe"
	"github.com/loopworks/reactor/pkg/session"
	"github.com/loopworks/reactor/pkg/thought"
	"github.com/loopworks/reactor/pkg/tool"
)

// maxConsecutiveTimeouts aborts a run early once this many tool calls in a
// row time out — a server that's clearly down shouldn't burn through every
// remaining iteration producing identical Timeout observations.
const maxConsecutiveTimeouts = 2

// Engine drives one ReAct run. It is not safe for concurrent Run calls —
// create a new Engine (or Reset its Session) per run.
type Engine struct {
	llmClient llm.Client
	executor  tool.Executor
	publisher events.Publisher
	cfg       Config

	gatherer *reactctx.Composite
	parser   *thought.Parser
	observer *observe.Processor

	sess *session.Session

	sessionID           string
	userQuery           string
	consecutiveTimeouts int
}

// New builds an Engine with default configuration and no context
// gatherer. publisher may be events.NoopPublisher{} if the caller doesn't
// want progress events.
func New(llmClient llm.Client, executor tool.Executor, publisher events.Publisher) *Engine {
	return WithConfig(llmClient, executor, publisher, DefaultConfig())
}

// WithConfig builds an Engine with an explicit configuration.
func WithConfig(llmClient llm.Client, executor tool.Executor, publisher events.Publisher, cfg Config) *Engine {
	return &Engine{
		llmClient: llmClient,
		executor:  executor,
		publisher: publisher,
		cfg:       cfg,
		parser:    thought.New(thought.DefaultConfig()),
		observer:  observe.New(cfg.MaxObservationTokens),
		sess:      session.WithConfig(cfg.MaxIterations, cfg.SessionTimeout),
	}
}

// WithContextGatherer attaches the composite context gatherer the engine
// consults at the start of every iteration. Optional — an Engine with no
// gatherer simply includes no "# Context" section in its prompt. The
// composite's budget is reset to cfg.ContextWindowTokens on attach, so
// "budget = configured window" (spec.md §2) holds regardless of what
// budget the composite happened to be constructed with. A child
// gatherer's failure is logged here — the composite itself just drops it
// and keeps going — mirroring how the teacher's pkg/mcp/executor.go logs
// and continues on a per-server ListTools failure.
func (e *Engine) WithContextGatherer(g *reactctx.Composite) *Engine {
	g.SetBudget(e.cfg.ContextWindowTokens)
	g.WithErrorHandler(func(gatherer reactctx.Gatherer, err error) {
		slog.Warn("context gatherer child failed", "source", gatherer.Name(), "error", err)
	})
	e.gatherer = g
	return e
}

// Cancel requests the run stop at the next safe point. It does not abort
// an in-flight tool call.
func (e *Engine) Cancel() { e.sess.Cancel() }

// IsCancelled reports whether Cancel has been called since the run
// started (or since the last Reset).
func (e *Engine) IsCancelled() bool { return e.sess.IsCancelled() }

// CurrentPhase returns the session's current phase.
func (e *Engine) CurrentPhase() session.Phase { return e.sess.Phase() }

// CurrentIteration returns the session's current iteration counter.
func (e *Engine) CurrentIteration() int { return e.sess.Iteration() }

// Run drives the full Think-Act-Observe loop to completion, returning a
// Response with a defined TerminationReason regardless of how the loop
// ended. It never returns a Go error for tool, parse, or LLM failures —
// those are folded into the termination reason; only a caller-level
// misuse (e.g. a nil LLM client) would panic.
func (e *Engine) Run(ctx context.Context, userQuery string) *Response {
	e.userQuery = userQuery
	e.sessionID = newSessionID()
	e.sess.Reset()
	e.consecutiveTimeouts = 0

	start := time.Now()
	e.emitProgress(ctx, "Starting", 0)

	var finalAnswer *string
	var terminatedReason session.TerminationReason
	var lastErr error
	totalTools := 0

	// The iteration ceiling is deliberately not checked here: Step handles
	// it by attempting IncrementIteration and falling through to
	// forceConclusion on failure, which always produces a terminal
	// outcome. Checking CanContinue (which already reports false at the
	// ceiling) would stop the loop one call too early and forceConclusion
	// would never run.
	for !e.sess.IsCancelled() && !e.sess.HasTimedOut() {
		outcome := e.Step(ctx)
		switch outcome.Kind {
		case OutcomeComplete:
			answer := outcome.FinalAnswer
			finalAnswer = &answer
			_ = e.sess.Terminate(session.ReasonTaskComplete)
		case OutcomeError:
			// Session-level transition errors and forced-conclusion failure
			// are recorded on the session itself; the error itself is kept
			// so determineTerminationReason can tell a genuine max-iterations
			// exhaustion apart from an infrastructure/transition failure.
			lastErr = outcome.Err
		}

		totalTools += outcome.ActionCount

		if outcome.Kind == OutcomeComplete || outcome.Kind == OutcomeError {
			break
		}
	}

	if e.sess.Phase() != session.PhaseTerminated {
		reason := e.determineTerminationReason(finalAnswer, lastErr)
		_ = e.sess.Terminate(reason)
	}
	terminatedReason = e.sess.TerminationReason()

	if terminatedReason != session.ReasonTaskComplete {
		finalAnswer = nil
	}

	resp := &Response{
		SessionID:          e.sessionID,
		FinalAnswer:        finalAnswer,
		Iterations:         e.sess.History(),
		TerminatedReason:   terminatedReason,
		TotalDuration:      time.Since(start),
		TotalToolsExecuted: totalTools,
	}

	e.emitCompletion(ctx, resp)
	return resp
}

// determineTerminationReason applies the precedence TaskComplete >
// UserCancelled > Timeout > Error > MaxIterationsReached. stepErr is the
// Err carried on whichever IterationOutcome broke the loop (nil if the
// loop ended some other way) — errMaxIterationsNoFinalAnswer is the one
// error value that still counts as a legitimate MaxIterationsReached
// exhaustion rather than an infrastructure/transition/parse failure, per
// spec.md §7's error taxonomy.
func (e *Engine) determineTerminationReason(finalAnswer *string, stepErr error) session.TerminationReason {
	switch {
	case finalAnswer != nil:
		return session.ReasonTaskComplete
	case e.sess.IsCancelled():
		return session.ReasonUserCancelled
	case e.sess.HasTimedOut():
		return session.ReasonTimeout
	case e.consecutiveTimeouts >= maxConsecutiveTimeouts:
		return session.ReasonError
	case stepErr != nil && !errors.Is(stepErr, errMaxIterationsNoFinalAnswer):
		return session.ReasonError
	default:
		return session.ReasonMaxIterationsReached
	}
}

// Step executes exactly one Think-Act-Observe cycle, or the forced-
// conclusion path when the iteration ceiling has just been reached.
func (e *Engine) Step(ctx context.Context) IterationOutcome {
	if e.sess.IsCancelled() {
		return IterationOutcome{Kind: OutcomeError, Err: fmt.Errorf("cancelled")}
	}

	if err := e.sess.IncrementIteration(); err != nil {
		return e.forceConclusion(ctx)
	}

	e.emitProgress(ctx, "Thinking", e.sess.Progress())
	if err := e.sess.TransitionTo(session.PhaseThinking); err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}

	start := time.Now()

	gathered := e.gatherContext(ctx)
	prompt := buildPrompt(e.userQuery, gathered, e.sess.History(), e.cfg.IncludeHistoryInContext)

	th, err := e.callAndParse(ctx, prompt, nil)
	if err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}

	if th.IsFinalAnswer {
		_ = e.sess.CompleteIteration(th.Reasoning, nil, nil, time.Since(start))
		return IterationOutcome{Kind: OutcomeComplete, FinalAnswer: th.Reasoning}
	}

	if len(th.PlannedActions) == 0 {
		_ = e.sess.CompleteIteration(th.Reasoning, nil, nil, time.Since(start))
		return IterationOutcome{Kind: OutcomeContinue, ActionCount: 0}
	}

	if err := e.sess.TransitionTo(session.PhaseActing); err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}
	e.emitProgress(ctx, "Acting", e.sess.Progress())

	observations := e.executeActions(ctx, th.PlannedActions)

	if err := e.sess.TransitionTo(session.PhaseObserving); err != nil {
		return IterationOutcome{Kind: OutcomeError, Err: err}
	}
	e.emitProgress(ctx, "Observing", e.sess.Progress())

	summary := e.observer.Summarize(observations)
	e.sess.AddContext(summary.FormattedForLLM)

	actionNames := make([]string, len(th.PlannedActions))
	observationTexts := make([]string, len(observations))
	for i, pa := range th.PlannedActions {
		actionNames[i] = pa.ToolName
	}
	for i, o := range observations {
		observationTexts[i] = o.Content
		if o.Kind == observe.KindTimeout {
			e.consecutiveTimeouts++
		} else {
			e.consecutiveTimeouts = 0
		}
	}

	_ = e.sess.CompleteIteration(th.Reasoning, actionNames, observationTexts, time.Since(start))
	if e.consecutiveTimeouts >= maxConsecutiveTimeouts {
		return IterationOutcome{
			Kind:        OutcomeError,
			ActionCount: len(th.PlannedActions),
			Err:         fmt.Errorf("%d consecutive tool timeouts", e.consecutiveTimeouts),
		}
	}
	return IterationOutcome{Kind: OutcomeContinue, ActionCount: len(th.PlannedActions)}
}

func (e *Engine) callAndParse(ctx context.Context, prompt string, tools []tool.Definition) (*thought.Thought, error) {
	iterCtx, cancel := context.WithTimeout(ctx, e.cfg.IterationTimeout)
	defer cancel()

	stream, err := e.llmClient.Generate(iterCtx, &llm.GenerateInput{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	resp, err := llm.Collect(stream)
	if err != nil {
		return nil, fmt.Errorf("llm stream: %w", err)
	}

	return e.parser.Parse(resp.Text, resp.ToolCalls)
}

func (e *Engine) gatherContext(ctx context.Context) reactctx.Gathered {
	if e.gatherer == nil {
		return reactctx.Gathered{}
	}
	return e.gatherer.GatherAll(ctx, e.userQuery, e.sess.Iteration())
}

func (e *Engine) emitProgress(ctx context.Context, message string, progress float64) {
	_ = e.publisher.PublishProgress(ctx, events.ProgressPayload{
		SessionID:       e.sessionID,
		Phase:           string(e.sess.Phase()),
		Iteration:       e.sess.Iteration(),
		MaxIterations:   e.sess.MaxIterations(),
		PercentComplete: progress * 100,
		Message:         message,
	})
}

func (e *Engine) emitCompletion(ctx context.Context, resp *Response) {
	_ = e.publisher.PublishCompletion(ctx, events.CompletionPayload{
		SessionID:          resp.SessionID,
		TerminationReason:  string(resp.TerminatedReason),
		TotalDuration:      resp.TotalDuration.Seconds(),
		TotalToolsExecuted: resp.TotalToolsExecuted,
	})
}
