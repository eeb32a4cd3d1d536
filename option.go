package stormon

import (
	"github.com/viant/stormon/model/storage"
	"github.com/viant/stormon/service/dao"
	"github.com/viant/stormon/service/event"
	"github.com/viant/stormon/service/tracker"
)

// Option customizes the monitor facade.
type Option func(s *Service)

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithTracker injects a pre-built tracker (for example one shared with an
// embedding host).
func WithTracker(svc *tracker.Service) Option {
	return func(s *Service) {
		s.tracker = svc
	}
}

// WithEventService injects the event service carrying notifications.
func WithEventService(svc *event.Service) Option {
	return func(s *Service) {
		s.events = svc
	}
}

// WithSnapshotDAO sets the store used by TakeSnapshot.
func WithSnapshotDAO(svc dao.Service[string, storage.Snapshot]) Option {
	return func(s *Service) {
		s.snapshots = svc
	}
}
