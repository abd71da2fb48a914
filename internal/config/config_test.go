package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
)

func TestParsePreservesDeclarationOrder(t *testing.T) {
	data := []byte(`{
		"mcpServers": {
			"weather": {"command": "weather-server", "args": ["--port", "0"]},
			"files": {"command": "file-server"},
			"search": {"command": "search-server", "env": {"API_KEY": "x"}}
		}
	}`)

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, "weather", entries[0].Name)
	require.Equal(t, "files", entries[1].Name)
	require.Equal(t, "search", entries[2].Name)

	require.Equal(t, "weather-server", entries[0].Descriptor.Command)
	require.Equal(t, []string{"--port", "0"}, entries[0].Descriptor.Args)
	require.Equal(t, map[string]string{"API_KEY": "x"}, entries[2].Descriptor.Env)
}

func TestParseRejectsMissingCommand(t *testing.T) {
	data := []byte(`{"mcpServers": {"weather": {"args": ["--x"]}}}`)

	_, err := Parse(data)
	require.ErrorContains(t, err, `server "weather": command is required`)
}

func TestParseRejectsEmptyServerSet(t *testing.T) {
	for name, data := range map[string]string{
		"no key":       `{}`,
		"empty object": `{"mcpServers": {}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.ErrorContains(t, err, "no servers declared")
		})
	}
}

func TestLoadWrapsFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

		var cfgErr *hosterrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		require.Contains(t, cfgErr.Path, "absent.json")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "servers.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mcpServers": {`), 0o600))

		_, err := Load(path)

		var cfgErr *hosterrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestLoadReadsValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mcpServers": {"calc": {"command": "calc-server"}}
	}`), 0o600))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "calc", entries[0].Name)
}
