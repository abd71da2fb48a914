// Package orchestrator implements the conversation protocol core.
//
// A query runs a fixed state machine: submit the transcript with the
// aggregated tool set, inspect the reply for tool-call requests, dispatch
// them to their owning servers, append the results, and resubmit without
// tools for the final answer. The follow-up never offers tool use, bounding
// every query to exactly one tool round-trip.
package orchestrator
