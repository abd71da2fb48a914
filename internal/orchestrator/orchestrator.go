package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/mcp-host-go/internal/backend"
	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// TruncationNotice is returned in place of raw partial text when the model's
// final output was cut off by the token budget. It is a normal result, not an
// error.
type TruncationNotice struct {
	Reason      backend.StopReason
	Description string
	Usage       backend.Usage
}

// String renders the notice as user-presentable text.
func (n *TruncationNotice) String() string {
	return fmt.Sprintf("[response truncated: %s] %s (input_tokens=%d, output_tokens=%d)",
		n.Reason, n.Description, n.Usage.InputTokens, n.Usage.OutputTokens)
}

// Result is the outcome of one processed query.
type Result struct {
	// Text is the model's final textual content. Empty when truncated.
	Text string
	// Truncation is set instead of Text when output hit the token ceiling.
	Truncation *TruncationNotice
	// Usage accounts the concluding submission.
	Usage backend.Usage
}

// Output returns the text a front end should present.
func (r *Result) Output() string {
	if r.Truncation != nil {
		return r.Truncation.String()
	}

	return r.Text
}

// Orchestrator runs the two-phase conversation protocol for single queries:
// submit transcript with tools, dispatch any requested tool calls, resubmit
// for a final answer. Exactly one tool round-trip per query.
type Orchestrator struct {
	log          *slog.Logger
	backend      backend.Backend
	registry     *registry.Registry
	dispatcher   Dispatcher
	systemPrompt string
}

// New creates an orchestrator. A nil dispatcher defaults to sequential
// dispatch.
func New(log *slog.Logger, b backend.Backend, reg *registry.Registry, dispatcher Dispatcher, systemPrompt string) *Orchestrator {
	if dispatcher == nil {
		dispatcher = NewSequentialDispatcher(log)
	}

	return &Orchestrator{
		log:          log.With("component", "orchestrator"),
		backend:      b,
		registry:     reg,
		dispatcher:   dispatcher,
		systemPrompt: systemPrompt,
	}
}

// ProcessQuery runs one query to a terminal state. Any failure aborts the
// query and surfaces as a *QueryProcessingError wrapping the cause; no
// partial transcript or partial tool results are exposed.
func (o *Orchestrator) ProcessQuery(ctx context.Context, text string) (*Result, error) {
	log := o.log.With("query_id", ulid.Make().String())

	result, err := o.run(ctx, log, text)
	if err != nil {
		log.Error("query aborted", "error", err)

		return nil, &hosterrors.QueryProcessingError{Err: err}
	}

	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, log *slog.Logger, text string) (*Result, error) {
	var transcript []message.Message

	if o.systemPrompt != "" {
		transcript = append(transcript, &message.SystemMessage{Text: o.systemPrompt})
	}

	transcript = append(transcript, &message.UserMessage{Text: text})

	tools := o.registry.AllTools()
	log.Debug("first submission", "tools", len(tools))

	reply, err := o.backend.Submit(ctx, transcript, tools)
	if err != nil {
		return nil, err
	}

	if !reply.HasToolCalls() {
		log.Debug("no tool calls requested", "stop_reason", reply.StopReason)

		return &Result{Text: reply.Text, Usage: reply.Usage}, nil
	}

	transcript = append(transcript, &message.AssistantMessage{
		Text:      reply.Text,
		ToolCalls: reply.ToolCalls,
	})

	// Validate every call before invoking any, so a malformed payload or
	// unknown tool aborts with zero partial tool execution.
	prepared, err := o.prepare(reply.ToolCalls)
	if err != nil {
		return nil, err
	}

	log.Debug("dispatching tool calls", "count", len(prepared))

	results, err := o.dispatcher.Dispatch(ctx, prepared)
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		transcript = append(transcript, res)
	}

	// The follow-up submission never offers tools: the protocol is bounded
	// to one tool round-trip per query.
	final, err := o.backend.Submit(ctx, transcript, nil)
	if err != nil {
		return nil, err
	}

	if final.StopReason == backend.StopMaxTokens {
		log.Warn("final response truncated by token budget",
			"output_tokens", final.Usage.OutputTokens)

		return &Result{
			Truncation: &TruncationNotice{
				Reason:      final.StopReason,
				Description: "model output hit the configured token budget before completing",
				Usage:       final.Usage,
			},
			Usage: final.Usage,
		}, nil
	}

	return &Result{Text: final.Text, Usage: final.Usage}, nil
}

// prepare parses argument payloads and resolves owning connections for all
// requested calls, in request order.
func (o *Orchestrator) prepare(calls []message.ToolCall) ([]PreparedCall, error) {
	prepared := make([]PreparedCall, 0, len(calls))

	for _, call := range calls {
		args := make(map[string]any)
		if len(call.Arguments) > 0 {
			if err := json.Unmarshal(call.Arguments, &args); err != nil {
				return nil, &hosterrors.ArgumentParseError{
					ToolName: call.Name,
					CallID:   call.ID,
					Raw:      string(call.Arguments),
					Err:      err,
				}
			}
		}

		conn, ok := o.registry.FindOwner(call.Name)
		if !ok {
			return nil, &hosterrors.ToolNotFoundError{ToolName: call.Name}
		}

		prepared = append(prepared, PreparedCall{
			ID:   call.ID,
			Name: call.Name,
			Args: args,
			Conn: conn,
		})
	}

	return prepared, nil
}
