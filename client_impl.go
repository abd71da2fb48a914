package mcphost

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/wagiedev/mcp-host-go/internal/backend"
	"github.com/wagiedev/mcp-host-go/internal/config"
	"github.com/wagiedev/mcp-host-go/internal/connector"
	hosterrors "github.com/wagiedev/mcp-host-go/internal/errors"
	"github.com/wagiedev/mcp-host-go/internal/orchestrator"
	"github.com/wagiedev/mcp-host-go/internal/registry"
)

// Identification sent to servers during the connection handshake.
const (
	clientName    = "mcp-host-go"
	clientVersion = "0.1.0"
)

type clientImpl struct {
	opts *Options
	log  *slog.Logger

	mu        sync.Mutex
	connected bool
	closed    bool
	registry  *registry.Registry
	orch      *orchestrator.Orchestrator
}

// Compile-time check that *clientImpl implements the Client interface.
var _ Client = (*clientImpl)(nil)

func newClientImpl(opts *Options) *clientImpl {
	log := opts.Logger
	if log == nil {
		log = NopLogger()
	}

	return &clientImpl{
		opts:     opts,
		log:      log.With("component", "client"),
		registry: registry.New(log),
	}
}

// ConnectToServers implements Client.
func (c *clientImpl) ConnectToServers(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return hosterrors.ErrClosed
	case c.connected:
		return hosterrors.ErrAlreadyConnected
	}

	entries, err := c.serverEntries()
	if err != nil {
		return err
	}

	conn := c.opts.Connector
	if conn == nil {
		conn = connector.New(c.log, clientName, clientVersion)
	}

	// Connect in declaration order. The first failure aborts the whole
	// startup; sessions established so far are closed only when rollback
	// is enabled, since the usual response to a startup failure is
	// process exit.
	for _, entry := range entries {
		established, err := conn.Connect(ctx, entry.Name, entry.Descriptor)
		if err != nil {
			if c.opts.CloseOnConnectFailure {
				c.rollback()
			}

			return err
		}

		c.registry.Register(established)
	}

	c.registry.MarkReady()

	be := c.opts.Backend
	if be == nil {
		be = backend.NewAnthropic(c.log, backend.AnthropicConfig{
			APIKey:    c.opts.APIKey,
			Model:     c.opts.Model,
			MaxTokens: c.opts.MaxTokens,
			BaseURL:   c.opts.BaseURL,
		})
	}

	c.orch = orchestrator.New(c.log, be, c.registry, c.opts.dispatcher(c.log), c.opts.SystemPrompt)
	c.connected = true

	c.log.Info("connected to all servers",
		"servers", c.registry.Len(),
		"tools", len(c.registry.AllTools()))

	return nil
}

func (c *clientImpl) serverEntries() ([]config.Entry, error) {
	if len(c.opts.Servers) > 0 {
		return c.opts.Servers, nil
	}

	if c.opts.ConfigPath == "" {
		return nil, &hosterrors.ConfigurationError{
			Path: "",
			Err:  errors.New("no server configuration: set WithConfigPath or WithServers"),
		}
	}

	return config.Load(c.opts.ConfigPath)
}

func (c *clientImpl) rollback() {
	for _, conn := range c.registry.Connections() {
		if err := conn.Session.Close(); err != nil {
			c.log.Warn("failed to close session during rollback",
				"server", conn.ServerName, "error", err)
		}
	}

	c.registry.Clear()
}

// ProcessQuery implements Client.
func (c *clientImpl) ProcessQuery(ctx context.Context, text string) (*Result, error) {
	orch, err := c.readyOrchestrator()
	if err != nil {
		return nil, err
	}

	return orch.ProcessQuery(ctx, text)
}

func (c *clientImpl) readyOrchestrator() (*orchestrator.Orchestrator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return nil, hosterrors.ErrClosed
	case !c.connected:
		return nil, hosterrors.ErrNotConnected
	}

	return c.orch, nil
}

// ChatLoop implements Client.
func (c *clientImpl) ChatLoop(ctx context.Context) error {
	if _, err := c.readyOrchestrator(); err != nil {
		return err
	}

	in := c.opts.Input
	if in == nil {
		in = os.Stdin
	}

	out := c.opts.Output
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "Type a query, or \"quit\" to exit.")

	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.EqualFold(line, "quit") {
			break
		}

		result, err := c.ProcessQuery(ctx, line)
		if err != nil {
			// One failed query does not end the session.
			fmt.Fprintf(out, "error: %v\n", err)

			continue
		}

		fmt.Fprintln(out, result.Output())
	}

	return scanner.Err()
}

// Servers implements Client.
func (c *clientImpl) Servers() []ServerInfo {
	conns := c.registry.Connections()

	infos := make([]ServerInfo, 0, len(conns))
	for _, conn := range conns {
		names := make([]string, 0, len(conn.Tools))
		for _, tool := range conn.Tools {
			names = append(names, tool.Name)
		}

		infos = append(infos, ServerInfo{Name: conn.ServerName, Tools: names})
	}

	return infos
}

// Cleanup implements Client.
func (c *clientImpl) Cleanup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true

	var errs []error

	for _, conn := range c.registry.Connections() {
		if err := conn.Session.Close(); err != nil {
			c.log.Warn("failed to close session", "server", conn.ServerName, "error", err)
			errs = append(errs, err)
		}
	}

	c.registry.Clear()
	c.orch = nil

	return errors.Join(errs...)
}
