package mcphost

import (
	"context"
)

// Client hosts a conversational session backed by a set of external tool
// servers. It aggregates the servers' tools, offers them to the model, and
// runs requested tool calls against their owning servers.
//
// Lifecycle: Clients are single-use. After Cleanup(), create a new client
// with NewClient().
//
// Example usage:
//
//	client := mcphost.NewClient(
//	    mcphost.WithLogger(slog.Default()),
//	    mcphost.WithConfigPath("servers.json"),
//	)
//	defer client.Cleanup()
//
//	if err := client.ConnectToServers(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.ProcessQuery(ctx, "What's the weather in Sacramento?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output())
type Client interface {
	// ConnectToServers launches and connects every configured server in
	// declaration order, then aggregates their tools. A single failure
	// aborts the whole startup with a ServerConnectionError naming the
	// server. Returns ErrAlreadyConnected on a second call.
	ConnectToServers(ctx context.Context) error

	// ProcessQuery runs one user query to completion, including at most
	// one round of tool calls. Returns ErrNotConnected before
	// ConnectToServers and ErrClosed after Cleanup; any processing
	// failure surfaces as a *QueryProcessingError.
	ProcessQuery(ctx context.Context, text string) (*Result, error)

	// ChatLoop reads queries line by line from the configured input,
	// printing each result to the configured output. Query failures are
	// reported and the loop continues; typing "quit" (case-insensitive)
	// or closing the input ends the loop.
	ChatLoop(ctx context.Context) error

	// Servers reports the connected servers and their tool names in
	// registration order.
	Servers() []ServerInfo

	// Cleanup closes all server sessions best-effort and releases state.
	// Safe to call multiple times; after Cleanup the client cannot be
	// reused.
	Cleanup() error
}

// ServerInfo summarizes one connected server.
type ServerInfo struct {
	Name  string
	Tools []string
}

// NewClient creates a client. Call ConnectToServers before ProcessQuery or
// ChatLoop:
//
//	client := mcphost.NewClient(
//	    mcphost.WithConfigPath("servers.json"),
//	    mcphost.WithSystemPrompt("Answer briefly."),
//	)
func NewClient(opts ...Option) Client {
	return newClientImpl(applyOptions(opts))
}
