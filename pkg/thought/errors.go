package thought

import "errors"

// Sentinel errors identifying why a pattern did not produce a Thought.
// When a pattern fails, Parse moves on to the next pattern rather than
// aborting. Parse itself returns only ErrEmptyResponse (no text and no
// tool calls) and ErrClarificationNeeded (the RequestClarification
// fallback) to its caller.
var (
	ErrEmptyResponse      = errors.New("thought: empty response")
	ErrParseError         = errors.New("thought: response does not match pattern")
	ErrInvalidToolCall    = errors.New("thought: malformed tool call")
	ErrJSONError          = errors.New("thought: malformed JSON payload")
	ErrClarificationNeeded = errors.New("thought: no pattern matched and fallback requested clarification")

	// errNotApplicable signals a pattern's structural trigger was never
	// met (e.g. no tool_calls were surfaced to the tool-calls-inline
	// pattern). It is distinct from the errors above: it carries no
	// diagnostic value of its own, it's just "try the next pattern".
	errNotApplicable = errors.New("thought: pattern not applicable")
)
