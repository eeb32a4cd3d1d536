package stormon

import (
	"context"
	"fmt"

	"github.com/viant/stormon/internal/idgen"
	"github.com/viant/stormon/model/notification"
	"github.com/viant/stormon/model/storage"
	"github.com/viant/stormon/service/dao"
	snapshotfs "github.com/viant/stormon/service/dao/snapshot/fs"
	snapshotmem "github.com/viant/stormon/service/dao/snapshot/memory"
	"github.com/viant/stormon/service/event"
	"github.com/viant/stormon/service/messaging"
	"github.com/viant/stormon/service/messaging/fs"
	"github.com/viant/stormon/service/messaging/memory"
	"github.com/viant/stormon/service/tracker"
	"github.com/viant/stormon/tracing"
)

// Service is the monitor facade: it owns the tracker, subscribes it to the
// notification topic and exposes the synchronous and asynchronous delivery
// paths side by side.
type Service struct {
	config    *Config
	tracker   *tracker.Service
	events    *event.Service
	publisher *event.Publisher[notification.Envelope]
	listener  *event.Listener[notification.Envelope]
	snapshots dao.Service[string, storage.Snapshot]
}

// New builds a monitor from options, wiring defaults for everything not
// supplied: memory queue vendor, in-memory snapshot store, fresh tracker.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	if s.tracker == nil {
		s.tracker = tracker.New(tracker.WithPeakRetention(s.config.Tracker.RetainPeaks))
	}
	if s.snapshots == nil {
		if location := s.config.Snapshots.Location; location != "" {
			store, err := snapshotfs.New(location)
			if err != nil {
				return err
			}
			s.snapshots = store
		} else {
			s.snapshots = snapshotmem.New()
		}
	}
	if s.events == nil {
		vendor := messaging.Vendor(s.config.Queue.Vendor)
		if vendor == "" {
			vendor = messaging.VendorMemory
		}
		events, err := event.New(vendor,
			event.WithNewMemoryQueueConfig(func(string) memory.Config {
				config := memory.DefaultConfig()
				if s.config.Queue.Buffer > 0 {
					config.QueueBuffer = s.config.Queue.Buffer
				}
				return config
			}),
			event.WithNewFsQueueConfig(func(topic string) fs.Config {
				config := fs.DefaultConfig()
				if s.config.Queue.BasePath != "" {
					config.BasePath = s.config.Queue.BasePath
				}
				config.BasePath = config.BasePath + "/" + topic
				return config
			}))
		if err != nil {
			return err
		}
		s.events = events
	}
	publisher, err := event.PublisherOf[notification.Envelope](s.events, s.config.Queue.Topic)
	if err != nil {
		return err
	}
	s.publisher = publisher
	listener, err := event.ListenOn[notification.Envelope](s.events, s.config.Queue.Topic, s.onEvent)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// onEvent unwraps one consumed envelope and feeds it to the tracker under a
// consumer span.
func (s *Service) onEvent(e *event.Event[notification.Envelope]) {
	n, ok := e.Data.Notification()
	if !ok {
		return
	}
	_, span := tracing.StartSpan(context.Background(), "stormon.notify", "CONSUMER")
	span.WithAttributes(map[string]string{
		"notification.kind": e.Data.Kind,
		"executor.id":       e.Data.ExecutorID(),
	})
	s.tracker.Notify(n)
	tracing.EndSpan(span, nil)
}

// Notify delivers one notification to the tracker synchronously, bypassing
// the queue. Useful for engines that dispatch listener callbacks themselves.
func (s *Service) Notify(n notification.Notification) {
	s.tracker.Notify(n)
}

// Publish puts one notification on the monitor's topic for asynchronous
// consumption.
func (s *Service) Publish(ctx context.Context, n notification.Notification) error {
	envelope := notification.NewEnvelope(n)
	evt := event.NewEvent(&event.Context{
		Topic:      s.config.Queue.Topic,
		Kind:       envelope.Kind,
		ExecutorID: envelope.ExecutorID(),
	}, *envelope)
	return s.publisher.Publish(ctx, evt)
}

// Publisher exposes the notification publisher so hosts can fan events in
// from their own dispatch loops.
func (s *Service) Publisher() *event.Publisher[notification.Envelope] {
	return s.publisher
}

// Tracker returns the underlying storage-status tracker.
func (s *Service) Tracker() *tracker.Service {
	return s.tracker
}

// TakeSnapshot exports the tracked state and persists it in the configured
// snapshot store.
func (s *Service) TakeSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	snapshot := s.tracker.Snapshot(idgen.New())
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Snapshots returns the snapshot store.
func (s *Service) Snapshots() dao.Service[string, storage.Snapshot] {
	return s.snapshots
}

// Shutdown stops the consumption loop. Pending queued notifications are not
// drained.
func (s *Service) Shutdown() {
	if s.listener != nil {
		s.listener.Stop()
	}
}
