package mcphost_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	mcphost "github.com/wagiedev/mcp-host-go"
	"github.com/wagiedev/mcp-host-go/internal/backend"
	"github.com/wagiedev/mcp-host-go/internal/config"
	"github.com/wagiedev/mcp-host-go/internal/message"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

type nopSession struct {
	closeCalls int
}

func (s *nopSession) CallTool(context.Context, string, map[string]any) (string, bool, error) {
	return "", false, nil
}

func (s *nopSession) Close() error {
	s.closeCalls++

	return nil
}

type nopConnector struct {
	session *nopSession
}

func (c *nopConnector) Connect(_ context.Context, name string, _ config.ServerDescriptor) (*registry.Connection, error) {
	return &registry.Connection{ServerName: name, Session: c.session}, nil
}

type echoBackend struct{}

func (echoBackend) Submit(_ context.Context, msgs []message.Message, _ []registry.ToolSchema) (*backend.Reply, error) {
	last := msgs[len(msgs)-1].(*message.UserMessage)

	return &backend.Reply{Text: last.Text, StopReason: backend.StopEndTurn}, nil
}

func stubOptions(session *nopSession) []mcphost.Option {
	return []mcphost.Option{
		mcphost.WithServers([]mcphost.ServerEntry{
			{Name: "stub", Descriptor: mcphost.ServerDescriptor{Command: "stub-bin"}},
		}),
		mcphost.WithConnector(&nopConnector{session: session}),
		mcphost.WithBackend(echoBackend{}),
	}
}

func TestWithClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := mcphost.WithClient(ctx, func(_ mcphost.Client) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithClient_ConnectFailure(t *testing.T) {
	// No configuration at all, so connecting fails before the callback.
	err := mcphost.WithClient(context.Background(), func(_ mcphost.Client) error {
		t.Error("callback should not be called when connect fails")

		return nil
	})

	var cfgErr *mcphost.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestWithClient_RunsCallbackAndCleansUp(t *testing.T) {
	session := &nopSession{}

	err := mcphost.WithClient(context.Background(), func(c mcphost.Client) error {
		result, err := c.ProcessQuery(context.Background(), "ping")
		if err != nil {
			return err
		}

		require.Equal(t, "ping", result.Output())

		return nil
	}, stubOptions(session)...)

	require.NoError(t, err)
	require.Equal(t, 1, session.closeCalls)
}

func TestWithClient_CallbackError(t *testing.T) {
	session := &nopSession{}
	want := errors.New("callback failed")

	err := mcphost.WithClient(context.Background(), func(_ mcphost.Client) error {
		return want
	}, stubOptions(session)...)

	require.ErrorIs(t, err, want)
	require.Equal(t, 1, session.closeCalls)
}
