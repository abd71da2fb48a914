package orchestrator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// PreparedCall is a tool-call request whose arguments parsed cleanly and
// whose owning connection has been resolved.
type PreparedCall struct {
	ID   string
	Name string
	Args map[string]any
	Conn *registry.Connection
}

// Dispatcher executes a batch of prepared tool calls and returns their
// results in request order. The transcript-ordering contract belongs to the
// interface, not a particular implementation: results[i] always answers
// calls[i].
type Dispatcher interface {
	Dispatch(ctx context.Context, calls []PreparedCall) ([]*message.ToolResultMessage, error)
}

// Compile-time verification that both strategies implement Dispatcher.
var (
	_ Dispatcher = (*SequentialDispatcher)(nil)
	_ Dispatcher = (*ConcurrentDispatcher)(nil)
)

// SequentialDispatcher invokes tool calls one at a time in request order.
// This is the default: it bounds resource use and needs no result-ordering
// coordination.
type SequentialDispatcher struct {
	log *slog.Logger
}

// NewSequentialDispatcher creates the default dispatcher.
func NewSequentialDispatcher(log *slog.Logger) *SequentialDispatcher {
	return &SequentialDispatcher{log: log.With("component", "dispatch")}
}

// Dispatch implements Dispatcher. The first invocation failure aborts the
// batch.
func (d *SequentialDispatcher) Dispatch(ctx context.Context, calls []PreparedCall) ([]*message.ToolResultMessage, error) {
	results := make([]*message.ToolResultMessage, 0, len(calls))

	for _, call := range calls {
		d.log.Debug("invoking tool", "tool", call.Name, "server", call.Conn.ServerName)

		content, isErr, err := call.Conn.Session.CallTool(ctx, call.Name, call.Args)
		if err != nil {
			return nil, err
		}

		results = append(results, &message.ToolResultMessage{
			CallID:  call.ID,
			Content: content,
			IsError: isErr,
		})
	}

	return results, nil
}

// ConcurrentDispatcher invokes all calls of a batch in parallel while
// preserving request order in the returned results. Opt-in; trades the
// sequential default's resource bounds for latency.
type ConcurrentDispatcher struct {
	log *slog.Logger
}

// NewConcurrentDispatcher creates a parallel dispatcher.
func NewConcurrentDispatcher(log *slog.Logger) *ConcurrentDispatcher {
	return &ConcurrentDispatcher{log: log.With("component", "dispatch")}
}

// Dispatch implements Dispatcher. Results are written into a slot per call,
// so completion timing never affects transcript order.
func (d *ConcurrentDispatcher) Dispatch(ctx context.Context, calls []PreparedCall) ([]*message.ToolResultMessage, error) {
	results := make([]*message.ToolResultMessage, len(calls))

	g, gctx := errgroup.WithContext(ctx)

	for i, call := range calls {
		g.Go(func() error {
			d.log.Debug("invoking tool", "tool", call.Name, "server", call.Conn.ServerName)

			content, isErr, err := call.Conn.Session.CallTool(gctx, call.Name, call.Args)
			if err != nil {
				return err
			}

			results[i] = &message.ToolResultMessage{
				CallID:  call.ID,
				Content: content,
				IsError: isErr,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
