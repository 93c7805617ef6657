// Package concierge answers visitor chat messages through a generative
// language model.
//
// [Concierge.Reply] never fails: when no model is configured, when the call
// errors or times out, or when the model returns nothing, a fixed fallback
// sentence is returned instead. The conversation history is owned by the
// caller and passed in on every call.
package concierge
