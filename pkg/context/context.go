// Package context implements a priority-ordered, budget-bounded
// composition of context sources feeding the engine's prompt assembly.
package context

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Priority ranks a context source relative to its peers when the
// composite gatherer has to decide who gets a share of a limited budget.
type Priority int

const (
	PriorityOptional Priority = 0
	PriorityLow      Priority = 25
	PriorityMedium   Priority = 50
	PriorityHigh     Priority = 75
	PriorityCritical Priority = 100
)

// Chunk is one piece of gathered context.
type Chunk struct {
	Content    string
	Source     string
	Priority   Priority
	TokenCount int
	Metadata   map[string]string
}

// Gathered is the composite's output for one gather_all call.
type Gathered struct {
	Chunks      []Chunk
	TotalTokens int
	Sources     []string
}

// FormatForPrompt concatenates chunks into the engine's prompt section,
// one "# Context from <source>" block per chunk, in priority order.
func (g Gathered) FormatForPrompt() string {
	blocks := make([]string, 0, len(g.Chunks))
	for _, c := range g.Chunks {
		blocks = append(blocks, fmt.Sprintf("# Context from %s\n%s\n", c.Source, c.Content))
	}
	return strings.Join(blocks, "\n")
}

// Gatherer is one pluggable source of context.
type Gatherer interface {
	Name() string
	Priority() Priority
	Gather(ctx context.Context, query string, iteration int, tokenBudget int) ([]Chunk, error)
}

// Composite fans out to its child Gatherers in priority order, handing
// each the budget remaining after the ones ahead of it.
type Composite struct {
	budget   int
	children []Gatherer
	onError  func(g Gatherer, err error)
}

// New builds an empty Composite with the given total token budget.
func New(budget int) *Composite {
	return &Composite{budget: budget}
}

// WithErrorHandler overrides what happens when a child Gatherer errors.
// The default logs nothing and simply skips the child — callers that want
// visibility (e.g. the engine logging via slog) should set this.
func (c *Composite) WithErrorHandler(fn func(g Gatherer, err error)) *Composite {
	c.onError = fn
	return c
}

// AddGatherer registers a child source. Order among equal-priority
// children is preserved (stable sort at gather time).
func (c *Composite) AddGatherer(g Gatherer) {
	c.children = append(c.children, g)
}

// SetBudget overrides the composite's total token budget. Exists so a
// caller who owns the authoritative budget (the engine's configured
// context window, per spec.md §2: "budget = configured window") can keep
// this composite in sync with it instead of whatever value it happened
// to be constructed with.
func (c *Composite) SetBudget(budget int) {
	c.budget = budget
}

// GatherAll runs every child in priority order, stopping early once the
// budget is exhausted. A child's failure is logged (via the error
// handler, if set) and otherwise ignored — the composite always returns
// whatever it has collected so far.
func (c *Composite) GatherAll(ctx context.Context, query string, iteration int) Gathered {
	ordered := make([]Gatherer, len(c.children))
	copy(ordered, c.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() > ordered[j].Priority()
	})

	remaining := c.budget
	var collected []Chunk

	for _, g := range ordered {
		if remaining <= 0 {
			break
		}
		chunks, err := g.Gather(ctx, query, iteration, remaining)
		if err != nil {
			if c.onError != nil {
				c.onError(g, err)
			}
			continue
		}
		spent := 0
		for _, ch := range chunks {
			spent += ch.TokenCount
		}
		remaining -= spent
		if remaining < 0 {
			remaining = 0
		}
		collected = append(collected, chunks...)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Priority > collected[j].Priority
	})

	return Gathered{
		Chunks:      collected,
		TotalTokens: sumTokens(collected),
		Sources:     uniqueSources(collected),
	}
}

func sumTokens(chunks []Chunk) int {
	total := 0
	for _, c := range chunks {
		total += c.TokenCount
	}
	return total
}

func uniqueSources(chunks []Chunk) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, c := range chunks {
		if !seen[c.Source] {
			seen[c.Source] = true
			sources = append(sources, c.Source)
		}
	}
	return sources
}
