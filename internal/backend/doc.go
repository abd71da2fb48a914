// Package backend abstracts the conversational model behind a single
// submit-and-receive capability and provides the Anthropic Messages API
// implementation of it.
//
// Rate limiting, retries, and timeouts are deliberately left to the SDK's
// own client behavior; the orchestrator never retries a submission.
package backend
