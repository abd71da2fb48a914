package mcphost

import "github.com/wagiedev/mcp-host-go/internal/errors"

// Re-export error types from internal package

// HostError is the base interface for all errors produced by this module.
type HostError = errors.HostError

// ConfigurationError indicates the server configuration could not be loaded.
type ConfigurationError = errors.ConfigurationError

// ServerConnectionError indicates a configured server failed to launch or
// complete its handshake.
type ServerConnectionError = errors.ServerConnectionError

// ToolNotFoundError indicates the model requested a tool no connected server
// provides.
type ToolNotFoundError = errors.ToolNotFoundError

// ToolInvocationError indicates a tool call failed at the transport or
// protocol level.
type ToolInvocationError = errors.ToolInvocationError

// ArgumentParseError indicates a tool call carried a malformed argument
// payload.
type ArgumentParseError = errors.ArgumentParseError

// ModelBackendError indicates a model API request failed.
type ModelBackendError = errors.ModelBackendError

// QueryProcessingError wraps any failure that aborted a query.
type QueryProcessingError = errors.QueryProcessingError

// Re-export sentinel errors from internal package.
var (
	// ErrNotConnected indicates ConnectToServers has not been called.
	ErrNotConnected = errors.ErrNotConnected

	// ErrAlreadyConnected indicates ConnectToServers was called twice.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrClosed indicates the client has been cleaned up and cannot be
	// reused.
	ErrClosed = errors.ErrClosed
)
