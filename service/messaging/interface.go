// Package messaging defines the queue abstraction the notification bus is
// built on. Vendors are intentionally dumb transports: delivery semantics
// (retry, dead-lettering) live in the vendor, interpretation of payloads
// lives with the consumer.
package messaging

import (
	"context"
)

// Vendor names a queue implementation ("memory", "fs").
type Vendor string

const (
	// VendorMemory is the in-process channel-backed queue.
	VendorMemory Vendor = "memory"

	// VendorFs is the filesystem-backed queue (shareable between processes
	// on one host).
	VendorFs Vendor = "fs"
)

// Queue represents an abstract message queue for any payload type.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue.
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing of this message.
	Ack() error

	// Nack indicates failure in processing this message.
	Nack(err error) error
}
