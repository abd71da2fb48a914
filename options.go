package mcphost

import (
	"io"
	"log/slog"

	"github.com/wagiedev/mcp-host-go/internal/backend"
	"github.com/wagiedev/mcp-host-go/internal/config"
	"github.com/wagiedev/mcp-host-go/internal/connector"
	"github.com/wagiedev/mcp-host-go/internal/orchestrator"
)

// Options holds client configuration assembled by functional options.
type Options struct {
	// Logger receives structured diagnostics. Nil disables logging.
	Logger *slog.Logger

	// ConfigPath locates the JSON server configuration file.
	ConfigPath string
	// Servers supplies server entries directly, bypassing ConfigPath.
	Servers []config.Entry

	// APIKey overrides the ANTHROPIC_API_KEY environment variable.
	APIKey string
	// BaseURL overrides the model API endpoint, mainly for tests.
	BaseURL string
	// Model selects the model identifier.
	Model string
	// MaxTokens bounds output tokens per model submission.
	MaxTokens int64
	// SystemPrompt is prepended to every query transcript.
	SystemPrompt string

	// Backend replaces the default Anthropic backend.
	Backend backend.Backend
	// Connector replaces the default stdio connector.
	Connector connector.Connector
	// ConcurrentDispatch runs a query's tool calls in parallel instead of
	// the sequential default.
	ConcurrentDispatch bool
	// CloseOnConnectFailure closes already-established sessions when a
	// later server fails to connect. Off by default: the process is
	// expected to exit on startup failure, so the OS reclaims children.
	CloseOnConnectFailure bool

	// Input and Output are the chat loop's streams. Default to
	// os.Stdin/os.Stdout.
	Input  io.Reader
	Output io.Writer
}

// Option configures a client using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for diagnostic output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithConfigPath sets the path of the JSON server configuration file read
// during ConnectToServers.
func WithConfigPath(path string) Option {
	return func(o *Options) {
		o.ConfigPath = path
	}
}

// WithServers supplies server entries directly instead of reading a
// configuration file. Entries connect in slice order.
func WithServers(entries []ServerEntry) Option {
	return func(o *Options) {
		o.Servers = entries
	}
}

// WithAPIKey sets the model API key, overriding the ANTHROPIC_API_KEY
// environment variable.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL overrides the model API endpoint.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithModel specifies which model to use (e.g. "claude-sonnet-4-5").
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens bounds output tokens per model submission.
func WithMaxTokens(n int64) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithSystemPrompt sets the system message prepended to every query.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithBackend replaces the default Anthropic backend, typically with a fake
// in tests.
func WithBackend(b backend.Backend) Option {
	return func(o *Options) {
		o.Backend = b
	}
}

// WithConnector replaces the default stdio connector.
func WithConnector(c connector.Connector) Option {
	return func(o *Options) {
		o.Connector = c
	}
}

// WithConcurrentDispatch runs a query's tool calls in parallel. Results keep
// request order regardless of completion timing.
func WithConcurrentDispatch() Option {
	return func(o *Options) {
		o.ConcurrentDispatch = true
	}
}

// WithCloseOnConnectFailure closes sessions established earlier in the same
// ConnectToServers call when a later server fails.
func WithCloseOnConnectFailure() Option {
	return func(o *Options) {
		o.CloseOnConnectFailure = true
	}
}

// WithInput sets the chat loop's input stream.
func WithInput(r io.Reader) Option {
	return func(o *Options) {
		o.Input = r
	}
}

// WithOutput sets the chat loop's output stream.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// dispatcher resolves the configured dispatch strategy.
func (o *Options) dispatcher(log *slog.Logger) orchestrator.Dispatcher {
	if o.ConcurrentDispatch {
		return orchestrator.NewConcurrentDispatcher(log)
	}

	return nil
}
