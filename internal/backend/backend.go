package backend

import (
	"context"

	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	// StopEndTurn means the model finished its reply normally.
	StopEndTurn StopReason = "end_turn"
	// StopMaxTokens means output was truncated by the token budget.
	StopMaxTokens StopReason = "max_tokens"
	// StopToolUse means the model stopped to request tool invocations.
	StopToolUse StopReason = "tool_use"
	// StopStopSequence means a configured stop sequence was produced.
	StopStopSequence StopReason = "stop_sequence"
)

// Usage accounts tokens consumed by one submission.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Total returns input plus output tokens.
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}

// Reply is one assistant turn returned by the model backend.
type Reply struct {
	Text       string
	ToolCalls  []message.ToolCall
	StopReason StopReason
	Usage      Usage
}

// HasToolCalls reports whether the reply requests any tool invocations.
func (r *Reply) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Backend is the model capability the orchestrator talks to: submit a
// transcript plus an optional tool set, receive one assistant turn.
//
// An empty tool set omits tool definitions from the request entirely, so the
// model is not offered tool-calling capability at all.
type Backend interface {
	Submit(ctx context.Context, msgs []message.Message, tools []registry.ToolSchema) (*Reply, error)
}
