package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolSchema describes one tool advertised by a connected server.
type ToolSchema struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Session is the opaque capability a connection holds for invoking tools on
// its server and releasing the server when done.
type Session interface {
	// CallTool forwards a single tool call and returns its flattened text
	// result. The bool reports whether the server marked the result as an
	// error payload.
	CallTool(ctx context.Context, name string, args map[string]any) (string, bool, error)

	// Close releases the session. Idempotent.
	Close() error
}

// Connection is one registered server: its name, its open session, and the
// tools it owns. Created during the connect phase, destroyed on cleanup.
type Connection struct {
	ServerName string
	Session    Session
	Tools      []ToolSchema
}

// State tags the registry lifecycle so the "no queries before connect
// completes" precondition is an explicit check instead of call-order
// discipline.
type State string

const (
	// StateConnecting is the initial state while servers are being registered.
	StateConnecting State = "connecting"
	// StateReady means the connect phase finished and queries may run.
	StateReady State = "ready"
	// StateClosed means Clear ran; the registry cannot be reused.
	StateClosed State = "closed"
)

// Registry holds all server connections and the flattened aggregate tool list
// submitted to the model. Populated once during the connect phase, read-only
// during queries, emptied on cleanup.
type Registry struct {
	log *slog.Logger

	mu     sync.RWMutex
	state  State
	conns  []*Connection
	ntools int
}

// New creates an empty registry in the connecting state.
func New(log *slog.Logger) *Registry {
	return &Registry{
		log:   log.With("component", "registry"),
		state: StateConnecting,
	}
}

// Register appends a connection and its tools to the aggregate. Duplicate
// tool names across servers are retained (first registration wins on lookup)
// but reported, since the model has no way to address the shadowed tool.
func (r *Registry) Register(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range conn.Tools {
		if owner := r.findOwnerLocked(tool.Name); owner != nil {
			r.log.Warn("duplicate tool name across servers; first registration wins",
				"tool", tool.Name,
				"owner", owner.ServerName,
				"shadowed", conn.ServerName)
		}
	}

	r.conns = append(r.conns, conn)
	r.ntools += len(conn.Tools)

	r.log.Debug("registered server", "server", conn.ServerName, "tools", len(conn.Tools))
}

// MarkReady transitions the registry out of the connect phase.
func (r *Registry) MarkReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateReady
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state
}

// FindOwner returns the first connection (in registration order) that owns a
// tool with the given name.
func (r *Registry) FindOwner(toolName string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn := r.findOwnerLocked(toolName)

	return conn, conn != nil
}

func (r *Registry) findOwnerLocked(toolName string) *Connection {
	for _, conn := range r.conns {
		for _, tool := range conn.Tools {
			if tool.Name == toolName {
				return conn
			}
		}
	}

	return nil
}

// AllTools returns a snapshot of the flattened aggregate tool list in
// registration order. The copy keeps a query's read independent of any
// later registry mutation.
func (r *Registry) AllTools() []ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ToolSchema, 0, r.ntools)
	for _, conn := range r.conns {
		tools = append(tools, conn.Tools...)
	}

	return tools
}

// Connections returns a snapshot of all registered connections in
// registration order.
func (r *Registry) Connections() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Connection, len(r.conns))
	copy(conns, r.conns)

	return conns
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// Clear empties all state and marks the registry closed. Used only during
// cleanup; calling it on an already-cleared registry is a no-op.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns = nil
	r.ntools = 0
	r.state = StateClosed
}
