// Package connector opens MCP sessions to configured tool servers.
//
// Each server is launched as a subprocess from its descriptor (command +
// arguments + optional environment) and spoken to over stdio using the
// official MCP SDK. The connector's job ends once a connection is handed to
// the registry: it performs no supervision, no reconnects, and no retries.
package connector
