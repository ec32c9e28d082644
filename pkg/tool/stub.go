package tool

import (
	"context"
	"fmt"
	"time"
)

// StubExecutor returns canned responses. Useful for tests and demos; a
// real deployment wires an MCP-backed or subprocess-backed Executor
// instead.
type StubExecutor struct {
	tools []Definition
}

// NewStubExecutor creates a stub with the given tool definitions.
func NewStubExecutor(tools []Definition) *StubExecutor {
	return &StubExecutor{tools: tools}
}

func (s *StubExecutor) Execute(_ context.Context, call Call, _ time.Duration) (*Result, error) {
	return &Result{
		CallID:  call.ID,
		Success: true,
		Output:  fmt.Sprintf("[stub] %s called with args: %s", call.Name, call.Arguments),
	}, nil
}

func (s *StubExecutor) ListTools(_ context.Context) ([]Definition, error) {
	return s.tools, nil
}

func (s *StubExecutor) Clone() Executor {
	return &StubExecutor{tools: s.tools}
}
