// Package registry tracks connected tool servers and the tools they expose.
//
// The registry owns every server connection for the lifetime of a client
// session and answers two questions: "what tools can the model see?" (the
// flattened aggregate list) and "which server owns this tool name?"
// (first-match-wins reverse lookup in registration order).
package registry
