package session

import (
	"sync"
	"time"
)

// DefaultMaxIterations is used by New() when no explicit configuration is
// supplied.
const DefaultMaxIterations = 10

// HardMaxIterationsCeiling is the absolute ceiling enforced by WithConfig,
// regardless of what a caller requests.
const HardMaxIterationsCeiling = 20

// DefaultTimeout is the wall-clock budget used by New().
const DefaultTimeout = 300 * time.Second

// IterationRecord is an immutable snapshot of one completed iteration.
// Once appended to a Session's history it is never mutated.
type IterationRecord struct {
	Number       int
	ThoughtText  string
	ActionsTaken []string
	Observations []string
	Duration     time.Duration
}

// Session holds all mutable state for a single ReAct run. It is guarded by
// an internal mutex held only across synchronous updates — callers must
// never hold it across a suspension point (an LLM call, a tool call, a
// context-gatherer call).
type Session struct {
	mu sync.Mutex

	phase             Phase
	terminationReason TerminationReason

	iteration     int
	maxIterations int

	startedAt time.Time
	timeout   time.Duration

	iterationHistory   []IterationRecord
	accumulatedContext []string
	pendingActions     []*Action

	cancelled bool
}

// New creates a Session with default configuration.
func New() *Session {
	return WithConfig(DefaultMaxIterations, DefaultTimeout)
}

// WithConfig creates a Session with an explicit iteration ceiling and
// timeout. maxIterations is clamped to [1, HardMaxIterationsCeiling].
func WithConfig(maxIterations int, timeout time.Duration) *Session {
	if maxIterations < 1 {
		maxIterations = 1
	}
	if maxIterations > HardMaxIterationsCeiling {
		maxIterations = HardMaxIterationsCeiling
	}
	s := &Session{maxIterations: maxIterations, timeout: timeout}
	s.resetLocked()
	return s
}

// Reset returns the session to Idle and clears history, accumulated
// context, and pending actions. Calling Reset twice in a row is identical
// to calling it once.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.phase = PhaseIdle
	s.terminationReason = ReasonNone
	s.iteration = 0
	s.startedAt = time.Now()
	s.iterationHistory = nil
	s.accumulatedContext = nil
	s.pendingActions = nil
	s.cancelled = false
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// TerminationReason returns the reason the session terminated, or
// ReasonNone if it has not terminated.
func (s *Session) TerminationReason() TerminationReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminationReason
}

// Iteration returns the current iteration counter.
func (s *Session) Iteration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iteration
}

// MaxIterations returns the configured ceiling.
func (s *Session) MaxIterations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxIterations
}

// TransitionTo attempts to move to newPhase. Terminating (newPhase ==
// PhaseTerminated) is handled the same way as any other transition here;
// callers wanting to record a TerminationReason should use Terminate
// instead, which calls TransitionTo internally.
func (s *Session) TransitionTo(newPhase Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionToLocked(newPhase)
}

func (s *Session) transitionToLocked(newPhase Phase) error {
	if !isLegalTransition(s.phase, newPhase) {
		if s.phase == PhaseTerminated {
			return &AlreadyTerminatedError{Reason: s.terminationReason}
		}
		return &TransitionError{From: s.phase, To: newPhase}
	}
	s.phase = newPhase
	return nil
}

// IncrementIteration advances the iteration counter by one. It fails with
// MaxIterationsExceededError (and leaves the counter unchanged) once the
// counter has reached maxIterations.
func (s *Session) IncrementIteration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.iteration >= s.maxIterations {
		return &MaxIterationsExceededError{Max: s.maxIterations}
	}
	s.iteration++
	return nil
}

// Elapsed returns the wall-clock time since the session was created or last
// reset.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startedAt)
}

// HasTimedOut reports whether the session's wall-clock budget has elapsed.
func (s *Session) HasTimedOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeout > 0 && time.Since(s.startedAt) >= s.timeout
}

// CanContinue reports whether another iteration may begin: the session
// must not be terminated, must be under the iteration ceiling, must not
// have timed out, and must not have been cancelled.
func (s *Session) CanContinue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseTerminated {
		return false
	}
	if s.iteration >= s.maxIterations {
		return false
	}
	if s.timeout > 0 && time.Since(s.startedAt) >= s.timeout {
		return false
	}
	return !s.cancelled
}

// AddContext appends a textual observation summary to accumulated context.
func (s *Session) AddContext(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accumulatedContext = append(s.accumulatedContext, text)
}

// AccumulatedContext returns a copy of the accumulated context slice.
func (s *Session) AccumulatedContext() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.accumulatedContext))
	copy(out, s.accumulatedContext)
	return out
}

// QueueAction appends an Action to the pending queue.
func (s *Session) QueueAction(a *Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingActions = append(s.pendingActions, a)
}

// PendingActions returns (and does not clear) the queued actions.
func (s *Session) PendingActions() []*Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Action, len(s.pendingActions))
	copy(out, s.pendingActions)
	return out
}

// ClearPendingActions empties the pending-action queue, typically after
// the engine has dispatched them all.
func (s *Session) ClearPendingActions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingActions = nil
}

// CompleteIteration appends an IterationRecord to history. The record's
// Number is set to the current iteration counter; the call fails if the
// counter has not been incremented since the previous CompleteIteration
// call (history numbers are strictly monotonic).
func (s *Session) CompleteIteration(thought string, actionsTaken []string, observations []string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.iterationHistory) > 0 {
		last := s.iterationHistory[len(s.iterationHistory)-1]
		if s.iteration <= last.Number {
			return &NonMonotonicHistoryError{Attempted: s.iteration, LastRecorded: last.Number}
		}
	}
	s.iterationHistory = append(s.iterationHistory, IterationRecord{
		Number:       s.iteration,
		ThoughtText:  thought,
		ActionsTaken: append([]string(nil), actionsTaken...),
		Observations: append([]string(nil), observations...),
		Duration:     duration,
	})
	return nil
}

// History returns a copy of the completed-iteration history.
func (s *Session) History() []IterationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]IterationRecord, len(s.iterationHistory))
	copy(out, s.iterationHistory)
	return out
}

// Progress returns iteration / maxIterations, clamped to [0, 1].
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxIterations <= 0 {
		return 0
	}
	p := float64(s.iteration) / float64(s.maxIterations)
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// Terminate transitions to Terminated and records reason. No further
// transitions are permitted afterward except via Reset.
func (s *Session) Terminate(reason TerminationReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transitionToLocked(PhaseTerminated); err != nil {
		return err
	}
	s.terminationReason = reason
	return nil
}

// Cancel sets the cancellation flag. Observed by CanContinue and by the
// engine at the top of each run-loop turn and of each step; an iteration
// already in progress runs to completion.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}

// IsCancelled reports whether Cancel has been called since the last Reset.
func (s *Session) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
