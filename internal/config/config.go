package config

import (
	"encoding/json"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
)

// ServerDescriptor describes how to launch one stdio tool server.
// Immutable once loaded.
type ServerDescriptor struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Entry pairs a server's unique name with its launch descriptor.
type Entry struct {
	Name       string
	Descriptor ServerDescriptor
}

// file mirrors the on-disk layout: {"mcpServers": {name: descriptor}}.
// The ordered map keeps descriptors in file order, which later becomes
// registration order.
type file struct {
	Servers *orderedmap.OrderedMap[string, ServerDescriptor] `json:"mcpServers"`
}

// Load reads and parses the server configuration file, returning descriptors
// in file order. An unreadable or malformed file yields a *ConfigurationError.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &hosterrors.ConfigurationError{Path: path, Err: err}
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, &hosterrors.ConfigurationError{Path: path, Err: err}
	}

	return entries, nil
}

// Parse decodes configuration JSON, preserving server declaration order.
func Parse(data []byte) ([]Entry, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Servers == nil || f.Servers.Len() == 0 {
		return nil, fmt.Errorf("no servers declared under \"mcpServers\"")
	}

	entries := make([]Entry, 0, f.Servers.Len())

	for pair := f.Servers.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Command == "" {
			return nil, fmt.Errorf("server %q: command is required", pair.Key)
		}

		entries = append(entries, Entry{Name: pair.Key, Descriptor: pair.Value})
	}

	return entries, nil
}
