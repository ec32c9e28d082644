package engine

import "errors"

// errMaxIterationsNoFinalAnswer marks the forced-conclusion call having
// produced no recognizable final answer. It never escapes Run as a Go
// error — it only steers TerminationReason selection.
var errMaxIterationsNoFinalAnswer = errors.New("engine: forced conclusion produced no final answer")
