// Package fs implements the filesystem messaging vendor on top of
// github.com/viant/afs. Messages are JSON documents moved between a pending,
// a processing and a dead-letter directory, so a queue can be inspected with
// ordinary file tools and shared between processes on one host.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/stormon/internal/idgen"
	"github.com/viant/stormon/service/messaging"
)

// Config for the filesystem queue vendor.
type Config struct {
	BasePath   string        // base directory for queue files
	MaxRetries int           // maximum number of redelivery attempts
	RetryDelay time.Duration // delay before a nacked message becomes visible again
}

// DefaultConfig returns a standard configuration for the filesystem queue.
func DefaultConfig() Config {
	return Config{
		BasePath:   "/tmp/stormon/queue",
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// Message implements messaging.Message for the filesystem queue. The
// exported fields form the on-disk document.
type Message[T any] struct {
	ID        string    `json:"id"`
	Data      T         `json:"data"`
	Retries   int       `json:"retries"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	queue     *Queue[T]
	mu        sync.Mutex
	processed bool
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.Data
}

// Ack removes the message from the processing directory.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return m.queue.remove(context.Background(), m.queue.processingDir, m.ID)
}

// Nack returns the message to the pending directory for redelivery, or moves
// it to the dead-letter directory once the retry limit is exhausted.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.Retries++
	if err != nil {
		m.Error = err.Error()
	}

	ctx := context.Background()
	dir := m.queue.pendingDir
	if m.Retries > m.queue.config.MaxRetries {
		dir = m.queue.dlqDir
	}
	if err := m.queue.write(ctx, dir, m); err != nil {
		return err
	}
	return m.queue.remove(ctx, m.queue.processingDir, m.ID)
}

// Queue implements a filesystem-based messaging.Queue.
type Queue[T any] struct {
	fs            afs.Service
	config        Config
	pendingDir    string
	processingDir string
	dlqDir        string
	mu            sync.Mutex
}

// NewQueue creates a filesystem queue rooted at config.BasePath.
func NewQueue[T any](fs afs.Service, config Config) (*Queue[T], error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	q := &Queue[T]{
		fs:            fs,
		config:        config,
		pendingDir:    path.Join(config.BasePath, "pending"),
		processingDir: path.Join(config.BasePath, "processing"),
		dlqDir:        path.Join(config.BasePath, "dlq"),
	}
	ctx := context.Background()
	for _, dir := range []string{q.pendingDir, q.processingDir, q.dlqDir} {
		if exists, _ := fs.Exists(ctx, dir); exists {
			continue
		}
		if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create queue directory %s: %w", dir, err)
		}
	}
	return q, nil
}

// Publish writes a new message document into the pending directory.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	message := &Message[T]{
		ID:        idgen.New(),
		Data:      *t,
		CreatedAt: time.Now(),
	}
	return q.write(ctx, q.pendingDir, message)
}

// Consume claims the oldest pending message by moving it into the processing
// directory. It returns (nil, nil) when the queue is empty.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := q.fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return nil, fmt.Errorf("failed to read message %s: %w", object.URL(), err)
		}
		var message Message[T]
		if err := json.Unmarshal(data, &message); err != nil {
			// Quarantine undecodable documents instead of wedging the queue.
			_ = q.fs.Move(ctx, object.URL(), path.Join(q.dlqDir, "invalid-"+object.Name()))
			continue
		}
		message.queue = q
		if err := q.write(ctx, q.processingDir, &message); err != nil {
			return nil, err
		}
		if err := q.fs.Delete(ctx, object.URL()); err != nil {
			return nil, fmt.Errorf("failed to claim message %s: %w", object.URL(), err)
		}
		return &message, nil
	}
	return nil, nil
}

func (q *Queue[T]) write(ctx context.Context, dir string, m *Message[T]) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	dest := path.Join(dir, m.ID+".json")
	if err := q.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write message %s: %w", dest, err)
	}
	return nil
}

func (q *Queue[T]) remove(ctx context.Context, dir, id string) error {
	dest := path.Join(dir, id+".json")
	if exists, _ := q.fs.Exists(ctx, dest); !exists {
		return nil
	}
	return q.fs.Delete(ctx, dest)
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
