package event

import (
	"context"
	"errors"
	"log"
	"time"
)

// Listener pulls events from a publisher on a dedicated goroutine and feeds
// them to a handler until stopped.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewListener returns a stopped listener; call Start to begin consumption.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Stop terminates the consumption loop.
func (l *Listener[T]) Stop() {
	l.cancel()
}

// Start launches the consumption goroutine.
func (l *Listener[T]) Start() {
	go func() {
		for {
			select {
			case <-l.ctx.Done():
				return
			default:
				event, err := l.publisher.Consume(l.ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return
					}
					log.Printf("Error consuming event: %v", err)
					continue
				}
				if event == nil {
					// Empty poll (fs vendor); back off briefly.
					time.Sleep(10 * time.Millisecond)
					continue
				}
				l.handler(event)
			}
		}
	}()
}
