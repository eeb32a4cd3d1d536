package event

import (
	"context"
	"time"

	"github.com/viant/stormon/service/messaging"
)

// Publisher publishes typed events on one queue topic.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher returns a publisher bound to the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish stamps the envelope and hands it to the queue.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = time.Now()
	return p.queue.Publish(ctx, event)
}

// Consume retrieves and acknowledges the next event. A nil event with nil
// error means the queue is currently empty (fs vendor).
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
