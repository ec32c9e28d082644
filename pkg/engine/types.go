package engine

import (
	"time"

	"github.com/loopworks/reactor/pkg/session"
)

// OutcomeKind discriminates what Step produced.
type OutcomeKind string

const (
	OutcomeContinue OutcomeKind = "continue"
	OutcomeComplete OutcomeKind = "complete"
	OutcomeError    OutcomeKind = "error"
)

// IterationOutcome is the result of a single Step call.
type IterationOutcome struct {
	Kind        OutcomeKind
	ActionCount int
	FinalAnswer string
	Err         error
}

// Response is the stable shape a completed Run returns.
type Response struct {
	SessionID          string
	FinalAnswer        *string
	Iterations         []session.IterationRecord
	TerminatedReason   session.TerminationReason
	TotalDuration      time.Duration
	TotalToolsExecuted int
}
