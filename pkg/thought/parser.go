package thought

import (
	"strings"

	"github.com/loopworks/reactor/pkg/llm"
)

// FallbackStrategy decides what Parse does when none of the structured
// patterns recognize a response.
type FallbackStrategy string

const (
	// TreatAsThought keeps the engine looping: the raw text becomes the
	// iteration's reasoning and no action is planned, so the next
	// iteration gets another chance.
	TreatAsThought FallbackStrategy = "treat_as_thought"
	// TreatAsFinalAnswer ends the loop, treating unparsed text as the
	// model's answer. Useful for lenient single-shot integrations.
	TreatAsFinalAnswer FallbackStrategy = "treat_as_final_answer"
	// RequestClarification surfaces ErrClarificationNeeded instead of
	// guessing. The engine treats it like any other parse failure and ends
	// the run with an error.
	RequestClarification FallbackStrategy = "request_clarification"
)

// Config controls what Parse does when the structured patterns all miss.
// The patterns themselves and their order are fixed.
type Config struct {
	// Fallback is applied only when every configured pattern fails.
	// Defaults to TreatAsThought.
	Fallback FallbackStrategy
}

// DefaultConfig returns the parser configuration the engine uses absent
// any override.
func DefaultConfig() Config {
	return Config{Fallback: TreatAsThought}
}

// Parser extracts a Thought from a completed LLM response, trying each
// strategy in a fixed priority order: tool-calls-inline, JSON-structured,
// ReAct-classic. The first pattern to succeed wins. When all three miss,
// the configured fallback applies; free-form parsing runs only as the
// TreatAsThought fallback, since it accepts any non-empty text.
type Parser struct {
	cfg Config
}

// New builds a Parser with the given configuration.
func New(cfg Config) *Parser {
	if cfg.Fallback == "" {
		cfg.Fallback = TreatAsThought
	}
	return &Parser{cfg: cfg}
}

// Parse interprets one LLM response. toolCalls are the structured tool
// calls the LLM framework surfaced directly, if any — pass nil when the
// integration relies purely on text-based tool calling.
func (p *Parser) Parse(text string, toolCalls []llm.ToolCall) (*Thought, error) {
	if strings.TrimSpace(text) == "" && len(toolCalls) == 0 {
		return nil, ErrEmptyResponse
	}

	if t, err := parseToolCallsInline(text, toolCalls, text); err == nil {
		return t, nil
	}

	if t, err := parseJSONStructured(text, text); err == nil {
		return t, nil
	}

	if t, err := parseReActClassic(text, text); err == nil {
		return t, nil
	}

	switch p.cfg.Fallback {
	case TreatAsFinalAnswer:
		return &Thought{
			Reasoning:     strings.TrimSpace(text),
			IsFinalAnswer: true,
			RawContent:    text,
		}, nil
	case RequestClarification:
		return nil, ErrClarificationNeeded
	default:
		return parseFreeForm(text, text)
	}
}
