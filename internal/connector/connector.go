package connector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-host-go/internal/config"
	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// Connector establishes sessions with configured tool servers.
type Connector interface {
	// Connect launches the described server, performs the MCP handshake,
	// retrieves the tool catalog, and returns the resulting connection.
	// Failures are wrapped in *ServerConnectionError and not retried.
	Connect(ctx context.Context, name string, desc config.ServerDescriptor) (*registry.Connection, error)
}

// Compile-time verification that StdioConnector implements Connector.
var _ Connector = (*StdioConnector)(nil)

// StdioConnector launches stdio tool servers as subprocesses and speaks MCP
// to them over their stdin/stdout.
type StdioConnector struct {
	log    *slog.Logger
	client *mcp.Client
}

// New creates a connector. All sessions it opens identify themselves to
// servers with the given implementation name and version.
func New(log *slog.Logger, name, version string) *StdioConnector {
	return &StdioConnector{
		log:    log.With("component", "connector"),
		client: mcp.NewClient(&mcp.Implementation{Name: name, Version: version}, nil),
	}
}

// Connect implements Connector.
func (c *StdioConnector) Connect(ctx context.Context, name string, desc config.ServerDescriptor) (*registry.Connection, error) {
	cmd, err := buildCommand(desc)
	if err != nil {
		return nil, &hosterrors.ServerConnectionError{ServerName: name, Err: err}
	}

	c.log.Debug("launching server", "server", name, "command", cmd.Path)

	session, err := c.client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, &hosterrors.ServerConnectionError{ServerName: name, Err: err}
	}

	catalog, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = session.Close()

		return nil, &hosterrors.ServerConnectionError{
			ServerName: name,
			Err:        fmt.Errorf("list tools: %w", err),
		}
	}

	tools := make([]registry.ToolSchema, 0, len(catalog.Tools))
	for _, tool := range catalog.Tools {
		tools = append(tools, registry.ToolSchema{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}

	c.log.Info("connected to server", "server", name, "tools", len(tools))

	return &registry.Connection{
		ServerName: name,
		Session:    &stdioSession{serverName: name, session: session},
		Tools:      tools,
	}, nil
}

// buildCommand turns a launch descriptor into an exec.Cmd. The command is
// resolved via PATH up front so a missing binary fails with a clear error
// instead of a broken-pipe handshake.
func buildCommand(desc config.ServerDescriptor) (*exec.Cmd, error) {
	path, err := exec.LookPath(desc.Command)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // command comes from the user's own configuration file
	cmd := exec.Command(path, desc.Args...)
	cmd.Stderr = os.Stderr

	if len(desc.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range desc.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	return cmd, nil
}

// stdioSession adapts an MCP client session to the registry's Session
// capability.
type stdioSession struct {
	serverName string
	session    *mcp.ClientSession

	closeOnce sync.Once
	closeErr  error
}

// Compile-time verification that stdioSession implements registry.Session.
var _ registry.Session = (*stdioSession)(nil)

// CallTool implements registry.Session. Transport and protocol failures are
// wrapped in *ToolInvocationError; a result the server flags as an error
// payload is still a result and is returned with the error bit set.
func (s *stdioSession) CallTool(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	res, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", false, &hosterrors.ToolInvocationError{
			ToolName:   name,
			ServerName: s.serverName,
			Err:        err,
		}
	}

	return FlattenContent(res.Content), res.IsError, nil
}

// Close implements registry.Session. Idempotent; repeated calls return the
// first close's result.
func (s *stdioSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.session.Close()
	})

	return s.closeErr
}

// FlattenContent reduces MCP result content to a single text payload. Text
// blocks are joined; non-text blocks are represented by a short placeholder
// since the model round-trip is text-only.
func FlattenContent(content []mcp.Content) string {
	parts := make([]string, 0, len(content))

	for _, c := range content {
		switch v := c.(type) {
		case *mcp.TextContent:
			parts = append(parts, v.Text)
		case *mcp.ImageContent:
			parts = append(parts, fmt.Sprintf("[image %s, %d bytes]", v.MIMEType, len(v.Data)))
		case *mcp.AudioContent:
			parts = append(parts, fmt.Sprintf("[audio %s, %d bytes]", v.MIMEType, len(v.Data)))
		case *mcp.ResourceLink:
			parts = append(parts, fmt.Sprintf("[resource %s]", v.URI))
		case *mcp.EmbeddedResource:
			if v.Resource != nil {
				parts = append(parts, v.Resource.Text)
			}
		}
	}

	return strings.Join(parts, "\n")
}
