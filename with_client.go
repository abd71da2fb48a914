package mcphost

import (
	"context"
	"fmt"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper creates a client, connects it to the configured servers,
// executes the callback, and ensures the servers are shut down via Cleanup()
// when done.
//
// The callback receives a fully connected Client that is ready for queries.
// If the callback returns an error, it is returned to the caller.
// If Cleanup() fails, a warning is logged but does not override the
// callback's error.
//
// Example usage:
//
//	err := mcphost.WithClient(ctx, func(c mcphost.Client) error {
//	    result, err := c.ProcessQuery(ctx, "What's the weather in Sacramento?")
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(result.Output())
//	    return nil
//	},
//	    mcphost.WithConfigPath("servers.json"),
//	    mcphost.WithLogger(log),
//	)
func WithClient(ctx context.Context, fn func(Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	client := NewClient(opts...)
	if err := client.ConnectToServers(ctx); err != nil {
		return fmt.Errorf("failed to connect client: %w", err)
	}

	defer func() {
		if closeErr := client.Cleanup(); closeErr != nil {
			log.Warn("failed to clean up client", "error", closeErr)
		}
	}()

	return fn(client)
}
