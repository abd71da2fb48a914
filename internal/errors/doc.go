// Package errors defines error types for the MCP host client.
//
// This package provides structured error types for the failure scenarios of
// server connection, tool dispatch, and model submission. All error types
// support error unwrapping and can be checked using errors.Is and errors.As.
package errors
