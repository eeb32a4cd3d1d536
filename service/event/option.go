package event

import (
	"github.com/viant/stormon/service/messaging/fs"
	"github.com/viant/stormon/service/messaging/memory"
)

type Option func(s *Service)

// WithNewFsQueueConfig sets the per-topic file system queue configuration.
func WithNewFsQueueConfig(newConfig func(topic string) fs.Config) Option {
	return func(s *Service) {
		s.fsNewQueueConfig = newConfig
	}
}

// WithNewMemoryQueueConfig sets the per-topic memory queue configuration.
func WithNewMemoryQueueConfig(newConfig func(topic string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newConfig
	}
}
