package event

import (
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/stormon/service/messaging"
	"github.com/viant/stormon/service/messaging/fs"
	"github.com/viant/stormon/service/messaging/memory"
)

// Service manages one queue per topic over a pluggable messaging vendor.
// Topics are created lazily on first use; publishers and listeners of the
// same topic and payload type share the queue.
type Service struct {
	queueVendor       messaging.Vendor
	mux               sync.Mutex
	queues            map[string]any
	fsNewQueueConfig  func(topic string) fs.Config
	memNewQueueConfig func(topic string) memory.Config
}

// New returns an event service for the given vendor.
func New(queueVendor messaging.Vendor, opts ...Option) (*Service, error) {
	ret := &Service{
		queueVendor: queueVendor,
		queues:      make(map[string]any),
	}
	for _, opt := range opts {
		opt(ret)
	}
	switch queueVendor {
	case messaging.VendorFs:
		if ret.fsNewQueueConfig == nil {
			ret.fsNewQueueConfig = func(topic string) fs.Config {
				config := fs.DefaultConfig()
				config.BasePath = config.BasePath + "/" + topic
				return config
			}
		}
	case messaging.VendorMemory:
		if ret.memNewQueueConfig == nil {
			ret.memNewQueueConfig = func(string) memory.Config { return memory.DefaultConfig() }
		}
	default:
		return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
	}
	return ret, nil
}

// QueueOf returns the topic's queue, creating it on first use.
func QueueOf[T any](s *Service, topic string) (messaging.Queue[Event[T]], error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if existing, ok := s.queues[topic]; ok {
		queue, ok := existing.(messaging.Queue[Event[T]])
		if !ok {
			return nil, fmt.Errorf("topic %s already bound to a different payload type", topic)
		}
		return queue, nil
	}
	var queue messaging.Queue[Event[T]]
	var err error
	switch s.queueVendor {
	case messaging.VendorFs:
		queue, err = fs.NewQueue[Event[T]](afs.New(), s.fsNewQueueConfig(topic))
	case messaging.VendorMemory:
		queue = memory.NewQueue[Event[T]](s.memNewQueueConfig(topic))
	default:
		err = fmt.Errorf("unsupported queue vendor: %s", s.queueVendor)
	}
	if err != nil {
		return nil, err
	}
	s.queues[topic] = queue
	return queue, nil
}

// PublisherOf returns a publisher for the topic.
func PublisherOf[T any](s *Service, topic string) (*Publisher[T], error) {
	queue, err := QueueOf[T](s, topic)
	if err != nil {
		return nil, err
	}
	return NewPublisher[T](queue), nil
}

// ListenOn subscribes the handler to the topic and starts consumption. The
// returned listener owns the consumption goroutine; callers stop it via
// Listener.Stop.
func ListenOn[T any](s *Service, topic string, handler func(*Event[T])) (*Listener[T], error) {
	publisher, err := PublisherOf[T](s, topic)
	if err != nil {
		return nil, err
	}
	listener := NewListener[T](publisher, handler)
	listener.Start()
	return listener, nil
}
