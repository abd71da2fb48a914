package backend

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// roundTrip marshals any value to a generic JSON shape for assertions that do
// not depend on SDK struct internals.
func roundTrip(t *testing.T, v any) any {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var out any
	require.NoError(t, json.Unmarshal(data, &out))

	return out
}

func TestBuildParamsExtractsSystemPrompt(t *testing.T) {
	params, err := buildParams("claude-sonnet-4-5", 1024, []message.Message{
		&message.SystemMessage{Text: "You are terse."},
		&message.UserMessage{Text: "hi"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, params.System, 1)
	require.Equal(t, "You are terse.", params.System[0].Text)
	require.Len(t, params.Messages, 1)
	require.Empty(t, params.Tools)
}

func TestBuildParamsOmitsToolsWhenAggregateEmpty(t *testing.T) {
	params, err := buildParams("claude-sonnet-4-5", 1024, []message.Message{
		&message.UserMessage{Text: "hi"},
	}, nil)
	require.NoError(t, err)

	// Zero registered tools means no tool capability is advertised at all.
	require.Nil(t, params.Tools)
}

func TestBuildParamsFullToolRoundTrip(t *testing.T) {
	msgs := []message.Message{
		&message.UserMessage{Text: "What's the weather in Sacramento?"},
		&message.AssistantMessage{
			ToolCalls: []message.ToolCall{{
				ID:        "toolu_01",
				Name:      "getWeather",
				Arguments: json.RawMessage(`{"city":"Sacramento"}`),
			}},
		},
		&message.ToolResultMessage{CallID: "toolu_01", Content: "72F sunny"},
	}

	params, err := buildParams("claude-sonnet-4-5", 1024, msgs, nil)
	require.NoError(t, err)
	require.Len(t, params.Messages, 3)

	shape := roundTrip(t, params.Messages).([]any)

	user := shape[0].(map[string]any)
	require.Equal(t, "user", user["role"])

	assistant := shape[1].(map[string]any)
	require.Equal(t, "assistant", assistant["role"])
	toolUse := assistant["content"].([]any)[0].(map[string]any)
	require.Equal(t, "tool_use", toolUse["type"])
	require.Equal(t, "getWeather", toolUse["name"])
	require.Equal(t, map[string]any{"city": "Sacramento"}, toolUse["input"])

	// Tool results travel back as user messages wrapping tool_result blocks.
	result := shape[2].(map[string]any)
	require.Equal(t, "user", result["role"])
	toolResult := result["content"].([]any)[0].(map[string]any)
	require.Equal(t, "tool_result", toolResult["type"])
	require.Equal(t, "toolu_01", toolResult["tool_use_id"])
}

func TestBuildParamsDefaultsEmptyToolCallInput(t *testing.T) {
	params, err := buildParams("claude-sonnet-4-5", 1024, []message.Message{
		&message.AssistantMessage{
			ToolCalls: []message.ToolCall{{ID: "toolu_02", Name: "listAll"}},
		},
	}, nil)
	require.NoError(t, err)

	shape := roundTrip(t, params.Messages).([]any)
	toolUse := shape[0].(map[string]any)["content"].([]any)[0].(map[string]any)
	require.Equal(t, map[string]any{}, toolUse["input"])
}

func TestConvertTools(t *testing.T) {
	tools := []registry.ToolSchema{{
		Name:        "getWeather",
		Description: "Current conditions for a city",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"city": {Type: "string"},
			},
			Required: []string{"city"},
		},
	}}

	converted, err := convertTools(tools)
	require.NoError(t, err)
	require.Len(t, converted, 1)

	shape := roundTrip(t, converted[0]).(map[string]any)
	require.Equal(t, "getWeather", shape["name"])

	inputSchema := shape["input_schema"].(map[string]any)
	require.Equal(t, "object", inputSchema["type"])
	require.Equal(t, []any{"city"}, inputSchema["required"])

	city := inputSchema["properties"].(map[string]any)["city"].(map[string]any)
	require.Equal(t, "string", city["type"])
}

func TestConvertToolsNilSchema(t *testing.T) {
	converted, err := convertTools([]registry.ToolSchema{{Name: "ping"}})
	require.NoError(t, err)

	shape := roundTrip(t, converted[0]).(map[string]any)
	require.Equal(t, "object", shape["input_schema"].(map[string]any)["type"])
}

func TestConvertResponse(t *testing.T) {
	t.Run("text reply", func(t *testing.T) {
		var result anthropic.Message
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "msg_01",
			"role": "assistant",
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 20},
			"content": [{"type": "text", "text": "Hello!"}]
		}`), &result))

		reply, err := convertResponse(&result)
		require.NoError(t, err)
		require.Equal(t, "Hello!", reply.Text)
		require.Empty(t, reply.ToolCalls)
		require.Equal(t, StopEndTurn, reply.StopReason)
		require.Equal(t, int64(30), reply.Usage.Total())
	})

	t.Run("tool use reply", func(t *testing.T) {
		var result anthropic.Message
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "msg_02",
			"role": "assistant",
			"stop_reason": "tool_use",
			"usage": {"input_tokens": 15, "output_tokens": 5},
			"content": [
				{"type": "text", "text": "Checking."},
				{"type": "tool_use", "id": "toolu_01", "name": "getWeather", "input": {"city": "Sacramento"}}
			]
		}`), &result))

		reply, err := convertResponse(&result)
		require.NoError(t, err)
		require.Equal(t, "Checking.", reply.Text)
		require.Equal(t, StopToolUse, reply.StopReason)
		require.Len(t, reply.ToolCalls, 1)
		require.Equal(t, "toolu_01", reply.ToolCalls[0].ID)
		require.Equal(t, "getWeather", reply.ToolCalls[0].Name)
		require.JSONEq(t, `{"city":"Sacramento"}`, string(reply.ToolCalls[0].Arguments))
	})

	t.Run("truncated reply", func(t *testing.T) {
		var result anthropic.Message
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "msg_03",
			"role": "assistant",
			"stop_reason": "max_tokens",
			"usage": {"input_tokens": 100, "output_tokens": 1024},
			"content": [{"type": "text", "text": "partial"}]
		}`), &result))

		reply, err := convertResponse(&result)
		require.NoError(t, err)
		require.Equal(t, StopMaxTokens, reply.StopReason)
	})
}
