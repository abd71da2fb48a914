package connector

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-host-go/internal/config"
)

func TestBuildCommandResolvesAndConfigures(t *testing.T) {
	cmd, err := buildCommand(config.ServerDescriptor{
		Command: "sh",
		Args:    []string{"-c", "true"},
		Env:     map[string]string{"WEATHER_API_KEY": "secret"},
	})
	require.NoError(t, err)

	require.Contains(t, cmd.Path, "sh")
	require.Equal(t, []string{"-c", "true"}, cmd.Args[1:])
	require.Contains(t, cmd.Env, "WEATHER_API_KEY=secret")
}

func TestBuildCommandMissingBinary(t *testing.T) {
	_, err := buildCommand(config.ServerDescriptor{Command: "definitely-not-a-real-binary-xyz"})
	require.Error(t, err)
}

func TestBuildCommandInheritsEnvironmentOnlyWhenNeeded(t *testing.T) {
	cmd, err := buildCommand(config.ServerDescriptor{Command: "sh"})
	require.NoError(t, err)

	// No explicit env means the subprocess inherits the parent environment.
	require.Nil(t, cmd.Env)
}

func TestFlattenContent(t *testing.T) {
	t.Run("joins text blocks", func(t *testing.T) {
		out := FlattenContent([]mcp.Content{
			&mcp.TextContent{Text: "72F"},
			&mcp.TextContent{Text: "sunny"},
		})
		require.Equal(t, "72F\nsunny", out)
	})

	t.Run("placeholders for binary content", func(t *testing.T) {
		out := FlattenContent([]mcp.Content{
			&mcp.ImageContent{MIMEType: "image/png", Data: []byte{1, 2, 3}},
		})
		require.Equal(t, "[image image/png, 3 bytes]", out)
	})

	t.Run("empty content", func(t *testing.T) {
		require.Empty(t, FlattenContent(nil))
	})
}
