package observe

import (
	"fmt"
	"strings"

	"github.com/loopworks/reactor/pkg/tool"
)

// Processor turns raw tool results into classified, budget-bounded
// Observations and formats them for re-ingestion into the conversation.
type Processor struct {
	maxTokens int
	strategy  TruncationStrategy
	headRatio float64
}

// New builds a Processor with the given token budget and the default
// HeadTail truncation strategy.
func New(maxTokens int) *Processor {
	return &Processor{maxTokens: maxTokens, strategy: HeadTail, headRatio: DefaultHeadRatio}
}

// WithTruncation overrides the truncation strategy (and head/tail ratio,
// used only by HeadTail).
func (p *Processor) WithTruncation(maxTokens int, strategy TruncationStrategy, headRatio float64) *Processor {
	return &Processor{maxTokens: maxTokens, strategy: strategy, headRatio: headRatio}
}

// Process classifies one tool result and truncates its content to the
// configured budget.
func (p *Processor) Process(result *tool.Result, call tool.Call) Observation {
	obs := Observation{
		ToolName:   call.Name,
		ToolCallID: call.ID,
		Duration:   result.Duration,
	}

	switch {
	case result.TimedOut:
		obs.Kind = KindTimeout
		obs.Content = "tool call timed out"
	case result.PartialComplete != nil:
		obs.Kind = KindPartialResult
		obs.Completeness = *result.PartialComplete
		obs.Content = extractContent(result.Output)
	case result.Success:
		obs.Kind = KindSuccess
		obs.Content = extractContent(result.Output)
		obs.StructuredData = result.Output
	default:
		obs.Kind = KindError
		obs.Recoverable, obs.ErrorCode = classifyError(result.Error)
		obs.Content = result.Error
	}

	original := len(obs.Content)
	budget := p.maxTokens * charsPerToken
	truncated, didTruncate := truncate(obs.Content, budget, p.strategy, p.headRatio)
	obs.Content = truncated
	obs.Metadata = Metadata{
		TokensEstimated: EstimateTokens(truncated),
		Truncated:       didTruncate,
		OriginalLength:  original,
	}

	return obs
}

// Summarize aggregates a batch of Observations produced during one
// iteration.
func (p *Processor) Summarize(observations []Observation) Summary {
	s := Summary{Observations: observations, AllSuccessful: true}
	for _, o := range observations {
		if o.Kind != KindSuccess {
			s.AllSuccessful = false
		}
		if o.Kind == KindError && o.Recoverable {
			s.HasRecoverableErrors = true
		}
		s.TotalDuration += o.Duration
	}
	s.FormattedForLLM = p.FormatForContext(observations)
	return s
}

// FormatForContext renders a batch of Observations as LLM-facing text,
// one block per observation separated by a blank line.
func (p *Processor) FormatForContext(observations []Observation) string {
	blocks := make([]string, 0, len(observations))
	for _, o := range observations {
		blocks = append(blocks, formatBlock(o))
	}
	return strings.Join(blocks, "\n\n")
}

func formatBlock(o Observation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Observation from %s:\n", o.ToolName)
	b.WriteString(statusLine(o))
	b.WriteString("\n")
	b.WriteString(o.Content)
	if o.Metadata.Truncated {
		b.WriteString("\n")
		b.WriteString(truncationNote(o.Metadata.OriginalLength, len(o.Content)))
	}
	return b.String()
}

func statusLine(o Observation) string {
	seconds := o.Duration.Seconds()
	switch o.Kind {
	case KindSuccess:
		return fmt.Sprintf("[SUCCESS in %.2fs]", seconds)
	case KindTimeout:
		return fmt.Sprintf("[TIMEOUT after %.2fs]", seconds)
	case KindPartialResult:
		return fmt.Sprintf("[PARTIAL RESULT: %.0f%% complete in %.2fs]", o.Completeness*100, seconds)
	case KindError:
		code := o.ErrorCode
		if code == "" {
			code = "UNKNOWN"
		}
		if o.Recoverable {
			return fmt.Sprintf("[ERROR: %s (recoverable)] (took %.2fs)", code, seconds)
		}
		return fmt.Sprintf("[ERROR: %s] (took %.2fs)", code, seconds)
	default:
		return "[UNKNOWN]"
	}
}
