package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-5"
	// DefaultMaxTokens bounds output length when no budget is configured.
	DefaultMaxTokens = 4096
)

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	// APIKey overrides the ANTHROPIC_API_KEY environment variable when set.
	APIKey string
	// Model is the model identifier. Defaults to DefaultModel.
	Model string
	// MaxTokens is the output token budget per submission.
	// Defaults to DefaultMaxTokens.
	MaxTokens int64
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
}

// Anthropic submits transcripts to the Anthropic Messages API.
type Anthropic struct {
	log       *slog.Logger
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// Compile-time verification that Anthropic implements Backend.
var _ Backend = (*Anthropic)(nil)

// NewAnthropic creates an Anthropic backend.
func NewAnthropic(log *slog.Logger, cfg AnthropicConfig) *Anthropic {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &Anthropic{
		log:       log.With("component", "backend"),
		client:    &client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
	}
}

// Submit implements Backend.
func (a *Anthropic) Submit(ctx context.Context, msgs []message.Message, tools []registry.ToolSchema) (*Reply, error) {
	params, err := buildParams(a.model, a.maxTokens, msgs, tools)
	if err != nil {
		return nil, &hosterrors.ModelBackendError{Err: err}
	}

	a.log.Debug("submitting to model", "messages", len(params.Messages), "tools", len(params.Tools))

	result, err := a.client.Messages.New(ctx, *params)
	if err != nil {
		return nil, &hosterrors.ModelBackendError{Err: err}
	}

	reply, err := convertResponse(result)
	if err != nil {
		return nil, &hosterrors.ModelBackendError{Err: err}
	}

	a.log.Debug("model replied",
		"stop_reason", reply.StopReason,
		"tool_calls", len(reply.ToolCalls),
		"output_tokens", reply.Usage.OutputTokens)

	return reply, nil
}

// buildParams converts a transcript and tool set into Messages API request
// parameters. System messages are extracted into the separate system field;
// tool results travel as user messages wrapping tool_result blocks, which is
// how the Messages API models them.
func buildParams(model anthropic.Model, maxTokens int64, msgs []message.Message, tools []registry.ToolSchema) (*anthropic.MessageNewParams, error) {
	params := &anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
	}

	for _, msg := range msgs {
		switch m := msg.(type) {
		case *message.SystemMessage:
			params.System = append(params.System, anthropic.TextBlockParam{
				Type: "text",
				Text: m.Text,
			})

		case *message.UserMessage:
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))

		case *message.AssistantMessage:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, 1+len(m.ToolCalls))
			if m.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Text))
			}

			for _, call := range m.ToolCalls {
				input := call.Arguments
				if len(input) == 0 {
					// The API rejects tool_use blocks with null input.
					input = json.RawMessage(`{}`)
				}

				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, input, call.Name))
			}

			if len(blocks) > 0 {
				params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
			}

		case *message.ToolResultMessage:
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewToolResultBlock(m.CallID, m.Content, m.IsError)))

		default:
			return nil, fmt.Errorf("unsupported message role %q", msg.Role())
		}
	}

	if len(tools) > 0 {
		converted, err := convertTools(tools)
		if err != nil {
			return nil, err
		}

		params.Tools = converted
	}

	return params, nil
}

// schemaShape is the subset of a JSON Schema document the tool parameter
// format carries.
type schemaShape struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

// convertTools maps aggregated tool schemas to Messages API tool parameters.
// Input schemas round-trip through JSON since the two libraries model schema
// documents with different types.
func convertTools(tools []registry.ToolSchema) ([]anthropic.ToolUnionParam, error) {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))

	for _, tool := range tools {
		shape := schemaShape{Type: "object"}

		if tool.InputSchema != nil {
			data, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("marshal input schema for tool %q: %w", tool.Name, err)
			}

			if err := json.Unmarshal(data, &shape); err != nil {
				return nil, fmt.Errorf("convert input schema for tool %q: %w", tool.Name, err)
			}

			if shape.Type == "" {
				shape.Type = "object"
			}
		}

		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       "object",
					Properties: shape.Properties,
					Required:   shape.Required,
				},
			},
		})
	}

	return out, nil
}

// convertResponse maps an API message to a backend Reply.
func convertResponse(result *anthropic.Message) (*Reply, error) {
	reply := &Reply{
		StopReason: StopReason(result.StopReason),
		Usage: Usage{
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
		},
	}

	for _, block := range result.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			reply.Text += content.Text

		case anthropic.ToolUseBlock:
			args, err := json.Marshal(content.Input)
			if err != nil {
				return nil, fmt.Errorf("marshal tool call arguments: %w", err)
			}

			reply.ToolCalls = append(reply.ToolCalls, message.ToolCall{
				ID:        content.ID,
				Name:      content.Name,
				Arguments: args,
			})
		}
	}

	return reply, nil
}
