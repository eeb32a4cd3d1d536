// Package event provides the typed envelope and pub/sub plumbing that moves
// engine notifications from producers to the tracker. The envelope is
// generic so hosts can route their own payloads over the same vendor.
package event

import "time"

// Context carries routing and correlation attributes of an event.
type Context struct {
	Topic      string `json:"topic"`
	Kind       string `json:"kind"`
	ExecutorID string `json:"executorId,omitempty"`
	Source     string `json:"source,omitempty"`
}

// Event is the envelope published on a queue topic.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent wraps data in a fresh envelope.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
