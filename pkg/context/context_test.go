package context

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGatherer struct {
	name     string
	priority Priority
	chunks   []Chunk
	err      error
	lastBudget int
}

func (m *mockGatherer) Name() string       { return m.name }
func (m *mockGatherer) Priority() Priority { return m.priority }
func (m *mockGatherer) Gather(_ context.Context, _ string, _ int, budget int) ([]Chunk, error) {
	m.lastBudget = budget
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

func TestGatherAllOrdersByPriorityDescending(t *testing.T) {
	c := New(1000)
	low := &mockGatherer{name: "low", priority: PriorityLow, chunks: []Chunk{{Content: "l", Source: "low", Priority: PriorityLow, TokenCount: 10}}}
	critical := &mockGatherer{name: "critical", priority: PriorityCritical, chunks: []Chunk{{Content: "c", Source: "critical", Priority: PriorityCritical, TokenCount: 10}}}
	c.AddGatherer(low)
	c.AddGatherer(critical)

	result := c.GatherAll(context.Background(), "q", 0)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "critical", result.Chunks[0].Source)
	assert.Equal(t, "low", result.Chunks[1].Source)
}

func TestGatherAllStopsEarlyWhenBudgetExhausted(t *testing.T) {
	c := New(10)
	first := &mockGatherer{name: "first", priority: PriorityHigh, chunks: []Chunk{{Content: "x", Source: "first", Priority: PriorityHigh, TokenCount: 10}}}
	second := &mockGatherer{name: "second", priority: PriorityLow, chunks: []Chunk{{Content: "y", Source: "second", Priority: PriorityLow, TokenCount: 5}}}
	c.AddGatherer(first)
	c.AddGatherer(second)

	result := c.GatherAll(context.Background(), "q", 0)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "first", result.Chunks[0].Source)
}

func TestGatherAllToleratesChildFailure(t *testing.T) {
	c := New(100)
	var handledErr error
	c.WithErrorHandler(func(g Gatherer, err error) { handledErr = err })

	broken := &mockGatherer{name: "broken", priority: PriorityHigh, err: errors.New("boom")}
	ok := &mockGatherer{name: "ok", priority: PriorityLow, chunks: []Chunk{{Content: "ok", Source: "ok", Priority: PriorityLow, TokenCount: 5}}}
	c.AddGatherer(broken)
	c.AddGatherer(ok)

	result := c.GatherAll(context.Background(), "q", 0)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "ok", result.Chunks[0].Source)
	require.Error(t, handledErr)
}

func TestGatherAllBudgetNeverExceeded(t *testing.T) {
	c := New(20)
	a := &mockGatherer{name: "a", priority: PriorityHigh, chunks: []Chunk{{Content: "a", Source: "a", Priority: PriorityHigh, TokenCount: 15}}}
	b := &mockGatherer{name: "b", priority: PriorityMedium, chunks: []Chunk{{Content: "b", Source: "b", Priority: PriorityMedium, TokenCount: 15}}}
	c.AddGatherer(a)
	c.AddGatherer(b)

	result := c.GatherAll(context.Background(), "q", 0)
	assert.Equal(t, 5, b.lastBudget)
	assert.Equal(t, 15, result.TotalTokens)
}

func TestGatherAllUniqueSources(t *testing.T) {
	c := New(1000)
	a := &mockGatherer{name: "a", priority: PriorityHigh, chunks: []Chunk{
		{Content: "1", Source: "shared", Priority: PriorityHigh, TokenCount: 1},
		{Content: "2", Source: "shared", Priority: PriorityHigh, TokenCount: 1},
	}}
	c.AddGatherer(a)

	result := c.GatherAll(context.Background(), "q", 0)
	assert.Equal(t, []string{"shared"}, result.Sources)
}

func TestFormatForPrompt(t *testing.T) {
	g := Gathered{Chunks: []Chunk{
		{Content: "hello", Source: "docs"},
	}}
	out := g.FormatForPrompt()
	assert.Contains(t, out, "# Context from docs")
	assert.Contains(t, out, "hello")
}
