package engine

import "github.com/google/uuid"

// newSessionID generates the identifier a Run response and every progress
// event for that run carries.
func newSessionID() string { return uuid.NewString() }

// newCallID generates a per-tool-call identifier distinct from the
// session ID; it becomes the ToolCallID of the observation that call
// produces.
func newCallID() string { return uuid.NewString() }
