package message

import "encoding/json"

// Message represents any message in a query's transcript.
// Use type assertion or type switch to determine the concrete type.
type Message interface {
	Role() string
}

// Compile-time verification that all message types implement Message.
var (
	_ Message = (*SystemMessage)(nil)
	_ Message = (*UserMessage)(nil)
	_ Message = (*AssistantMessage)(nil)
	_ Message = (*ToolResultMessage)(nil)
)

// SystemMessage carries the optional system prompt prepended to a transcript.
type SystemMessage struct {
	Text string
}

// Role implements the Message interface.
func (m *SystemMessage) Role() string { return "system" }

// UserMessage carries the user's query text.
type UserMessage struct {
	Text string
}

// Role implements the Message interface.
func (m *UserMessage) Role() string { return "user" }

// ToolCall is a pending tool invocation requested by the model.
//
// Arguments stays raw JSON until the orchestrator parses it; a payload the
// model produced is not trusted to be well-formed.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// AssistantMessage is a model reply. It may carry zero or more pending
// tool-call requests alongside (or instead of) text content.
type AssistantMessage struct {
	Text      string
	ToolCalls []ToolCall
}

// Role implements the Message interface.
func (m *AssistantMessage) Role() string { return "assistant" }

// HasToolCalls reports whether the model requested any tool invocations.
func (m *AssistantMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ToolResultMessage carries one tool invocation's result payload, tagged with
// the call ID it answers so the backend can correlate it.
type ToolResultMessage struct {
	CallID  string
	Content string
	IsError bool
}

// Role implements the Message interface.
func (m *ToolResultMessage) Role() string { return "tool" }
