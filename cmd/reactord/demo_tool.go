package main

import (
	"context"
	"fmt"
	"time"

	"github.com/loopworks/reactor/pkg/tool"
)

// demoToolExecutor backs the single "search" tool the demo LLM client
// knows how to call. Real deployments wire an MCP-backed or
// subprocess-backed Executor; this one just echoes its argument back as
// a canned observation so the full loop can be exercised end to end.
type demoToolExecutor struct{}

func newDemoToolExecutor() *demoToolExecutor { return &demoToolExecutor{} }

func (d *demoToolExecutor) Execute(_ context.Context, call tool.Call, _ time.Duration) (*tool.Result, error) {
	return &tool.Result{
		CallID:  call.ID,
		Success: true,
		Output:  fmt.Sprintf("found 3 relevant results for args %s", call.Arguments),
	}, nil
}

func (d *demoToolExecutor) ListTools(_ context.Context) ([]tool.Definition, error) {
	return []tool.Definition{
		{
			Name:             "search",
			Description:      "Search for information relevant to a query.",
			ParametersSchema: `{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`,
		},
	}, nil
}

func (d *demoToolExecutor) Clone() tool.Executor { return &demoToolExecutor{} }
