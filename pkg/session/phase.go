// Package session implements the iteration state machine that drives a
// single ReAct run: phase transitions, the iteration counter, wall-clock
// deadlines, and the append-only history of completed iterations.
package session

// Phase is one of the five states a Session can occupy.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseThinking   Phase = "thinking"
	PhaseActing     Phase = "acting"
	PhaseObserving  Phase = "observing"
	PhaseTerminated Phase = "terminated"
)

// TerminationReason explains why a run ended. Exactly one applies to any
// completed run; precedence when multiple conditions fire simultaneously is
// TaskComplete > UserCancelled > Timeout > Error > MaxIterationsReached
// (applied by the engine, not by Session itself).
type TerminationReason string

const (
	ReasonNone                 TerminationReason = ""
	ReasonTaskComplete         TerminationReason = "task_complete"
	ReasonMaxIterationsReached TerminationReason = "max_iterations_reached"
	ReasonUserCancelled        TerminationReason = "user_cancelled"
	ReasonError                TerminationReason = "error"
	ReasonTimeout              TerminationReason = "timeout"
)

// transitionTable encodes the legal phase-transition matrix. Idle is the
// only phase that may transition to itself; Terminated accepts no
// transitions at all (reset() bypasses this table entirely).
var transitionTable = map[Phase]map[Phase]bool{
	PhaseIdle: {
		PhaseIdle: true, PhaseThinking: true, PhaseActing: false,
		PhaseObserving: false, PhaseTerminated: true,
	},
	PhaseThinking: {
		PhaseIdle: true, PhaseThinking: false, PhaseActing: true,
		PhaseObserving: false, PhaseTerminated: true,
	},
	PhaseActing: {
		PhaseIdle: true, PhaseThinking: false, PhaseActing: false,
		PhaseObserving: true, PhaseTerminated: true,
	},
	PhaseObserving: {
		PhaseIdle: true, PhaseThinking: true, PhaseActing: false,
		PhaseObserving: false, PhaseTerminated: true,
	},
	PhaseTerminated: {
		PhaseIdle: false, PhaseThinking: false, PhaseActing: false,
		PhaseObserving: false, PhaseTerminated: false,
	},
}

func isLegalTransition(from, to Phase) bool {
	row, ok := transitionTable[from]
	if !ok {
		return false
	}
	return row[to]
}
