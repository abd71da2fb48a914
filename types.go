package mcphost

import (
	"github.com/wagiedev/mcp-host-go/internal/backend"
	"github.com/wagiedev/mcp-host-go/internal/config"
	"github.com/wagiedev/mcp-host-go/internal/connector"
	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/orchestrator"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// Re-export types from internal packages

// ===== Server configuration =====

// ServerDescriptor describes how to launch one stdio tool server.
type ServerDescriptor = config.ServerDescriptor

// ServerEntry pairs a server's unique name with its launch descriptor.
// Entries connect in slice order.
type ServerEntry = config.Entry

// ===== Tools and connections =====

// ToolSchema is one tool definition advertised by a server.
type ToolSchema = registry.ToolSchema

// Connector establishes server sessions. Replace it with WithConnector to
// test without spawning subprocesses.
type Connector = connector.Connector

// ===== Model backend =====

// Backend is the model capability: submit a transcript plus an optional
// tool set, receive one assistant turn. Replace it with WithBackend to test
// without network access.
type Backend = backend.Backend

// Reply is one assistant turn returned by the model backend.
type Reply = backend.Reply

// Usage accounts tokens consumed by one submission.
type Usage = backend.Usage

// StopReason indicates why the model stopped generating.
type StopReason = backend.StopReason

const (
	// StopEndTurn means the model finished its reply normally.
	StopEndTurn = backend.StopEndTurn
	// StopMaxTokens means output was truncated by the token budget.
	StopMaxTokens = backend.StopMaxTokens
	// StopToolUse means the model stopped to request tool invocations.
	StopToolUse = backend.StopToolUse
	// StopStopSequence means a configured stop sequence was produced.
	StopStopSequence = backend.StopStopSequence
)

// ===== Transcript =====

// Message is one entry of a conversation transcript.
type Message = message.Message

// ToolCall is one tool invocation requested by the model.
type ToolCall = message.ToolCall

// ===== Query results =====

// Result is the outcome of one processed query.
type Result = orchestrator.Result

// TruncationNotice reports that the model's final output was cut off by the
// token budget. Returned in Result.Truncation instead of raw partial text.
type TruncationNotice = orchestrator.TruncationNotice
