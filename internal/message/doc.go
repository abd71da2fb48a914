// Package message defines the conversation transcript model.
//
// A transcript is the ordered sequence of messages built while processing a
// single query: the user's text, the model's replies (possibly carrying
// tool-call requests), and the results of dispatched tool calls. Transcripts
// are scoped to one query and never persisted.
package message
