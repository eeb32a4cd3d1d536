// Package memory implements an in-memory snapshot store. All operations are
// thread-safe and return copies of the underlying objects to prevent data
// races when callers mutate the returned instances.
package memory

import (
	"context"
	"sync"

	"github.com/viant/stormon/model/storage"
	"github.com/viant/stormon/service/dao"
)

// Service implements an in-memory storage.Snapshot store.
type Service struct {
	snapshots map[string]*storage.Snapshot
	mux       sync.RWMutex
}

// Compile-time check that Service implements the generic DAO interface.
var _ dao.Service[string, storage.Snapshot] = (*Service)(nil)

// Save persists (a clone of) the supplied snapshot.
func (s *Service) Save(_ context.Context, snapshot *storage.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	s.snapshots[snapshot.ID] = snapshot.Clone()
	return nil
}

// Load retrieves a copy of the snapshot or dao.ErrNotFound.
func (s *Service) Load(_ context.Context, id string) (*storage.Snapshot, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	snapshot, ok := s.snapshots[id]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return snapshot.Clone(), nil
}

// Delete removes a snapshot.
func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.snapshots, id)
	return nil
}

// List returns copies of all stored snapshots.
func (s *Service) List(_ context.Context) ([]*storage.Snapshot, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*storage.Snapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		out = append(out, snapshot.Clone())
	}
	return out, nil
}

// New constructor.
func New() *Service {
	return &Service{snapshots: map[string]*storage.Snapshot{}}
}
