// Package memory implements the in-process messaging vendor: a buffered
// channel with per-message retry and an optional dead-letter list.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/stormon/internal/idgen"
	"github.com/viant/stormon/service/messaging"
)

// Config for the memory queue vendor.
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	DeadLetter  bool
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for the memory queue.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		DeadLetter:  true,
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message for the in-memory queue.
type Message[T any] struct {
	id      string
	payload T
	queue   *Queue[T]
	retries int

	mu        sync.Mutex
	processed bool
	createdAt time.Time
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return nil
}

// Nack indicates a failure in processing the message. The message is
// requeued after the configured delay until the retry limit is exhausted;
// after that it lands in the dead-letter list when one is enabled.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.retries++

	if m.retries <= m.queue.config.MaxRetries {
		go m.queue.requeue(m)
		return nil
	}
	if m.queue.config.DeadLetter {
		m.queue.deadLetter(m)
	}
	return nil
}

// Queue implements an in-memory messaging.Queue.
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config

	dlqMu sync.Mutex
	dlq   []*Message[T]
}

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new item to the queue.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: time.Now(),
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue, blocking until one is
// available or the context is cancelled.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of buffered messages.
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of dead-lettered messages.
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

// requeue puts a fresh copy of a nacked message back on the channel after
// the retry delay, preserving its retry count.
func (q *Queue[T]) requeue(m *Message[T]) {
	time.Sleep(q.config.RetryDelay)
	q.messages <- &Message[T]{
		id:        m.id,
		payload:   m.payload,
		queue:     q,
		retries:   m.retries,
		createdAt: time.Now(),
	}
}

func (q *Queue[T]) deadLetter(m *Message[T]) {
	q.dlqMu.Lock()
	q.dlq = append(q.dlq, m)
	q.dlqMu.Unlock()
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
