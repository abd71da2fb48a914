package errors

import (
	"errors"
	"fmt"
)

// HostError is the base interface for all errors raised by this module.
type HostError interface {
	error
	IsHostError() bool
}

// Compile-time verification that all error types implement HostError.
var (
	_ HostError = (*ConfigurationError)(nil)
	_ HostError = (*ServerConnectionError)(nil)
	_ HostError = (*ToolNotFoundError)(nil)
	_ HostError = (*ToolInvocationError)(nil)
	_ HostError = (*ArgumentParseError)(nil)
	_ HostError = (*ModelBackendError)(nil)
	_ HostError = (*QueryProcessingError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates no servers have been connected yet.
	ErrNotConnected = errors.New("client not connected: call ConnectToServers first")

	// ErrAlreadyConnected indicates ConnectToServers was called twice.
	ErrAlreadyConnected = errors.New("client already connected")

	// ErrClosed indicates the client has been cleaned up and cannot be reused.
	ErrClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")
)

// ConfigurationError indicates the server configuration file could not be
// read or parsed. Fatal to startup.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("failed to load server configuration %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *ConfigurationError) IsHostError() bool { return true }

// ServerConnectionError indicates one server's launch, handshake, or tool
// catalog retrieval failed. Fatal to startup; remaining connects are aborted.
type ServerConnectionError struct {
	ServerName string
	Err        error
}

func (e *ServerConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to server %q: %v", e.ServerName, e.Err)
}

func (e *ServerConnectionError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *ServerConnectionError) IsHostError() bool { return true }

// ToolNotFoundError indicates a requested tool name resolved to no registered
// connection. Fatal to the query; no tool results are produced.
type ToolNotFoundError struct {
	ToolName string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q is not provided by any connected server", e.ToolName)
}

// IsHostError implements HostError.
func (e *ToolNotFoundError) IsHostError() bool { return true }

// ToolInvocationError indicates a tool server returned or raised an error
// during execution. Fatal to the query; not retried.
type ToolInvocationError struct {
	ToolName   string
	ServerName string
	Err        error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool %q on server %q failed: %v", e.ToolName, e.ServerName, e.Err)
}

func (e *ToolInvocationError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *ToolInvocationError) IsHostError() bool { return true }

// ArgumentParseError indicates a tool-call argument payload from the model
// was not valid JSON. Fatal to the query before any tool executes.
type ArgumentParseError struct {
	ToolName string
	CallID   string
	Raw      string
	Err      error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("malformed arguments for tool %q (call %s): %v", e.ToolName, e.CallID, e.Err)
}

func (e *ArgumentParseError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *ArgumentParseError) IsHostError() bool { return true }

// ModelBackendError indicates a model submission failed. Fatal to the query.
type ModelBackendError struct {
	Err error
}

func (e *ModelBackendError) Error() string {
	return fmt.Sprintf("model backend request failed: %v", e.Err)
}

func (e *ModelBackendError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *ModelBackendError) IsHostError() bool { return true }

// QueryProcessingError wraps any failure that aborted a query. It is the
// outermost error surfaced by ProcessQuery; unwrap it to reach the cause.
type QueryProcessingError struct {
	Err error
}

func (e *QueryProcessingError) Error() string {
	return fmt.Sprintf("query processing failed: %v", e.Err)
}

func (e *QueryProcessingError) Unwrap() error {
	return e.Err
}

// IsHostError implements HostError.
func (e *QueryProcessingError) IsHostError() bool { return true }
