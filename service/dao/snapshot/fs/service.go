// Package fs implements a filesystem snapshot store on top of
// github.com/viant/afs. Snapshots are written as one JSON document per id so
// dashboards and offline tooling can pick them up without talking to the
// monitor process.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/stormon/model/storage"
	"github.com/viant/stormon/service/dao"
)

// Service implements a filesystem-based snapshot store.
type Service struct {
	basePath string
	fs       afs.Service
	mux      sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, storage.Snapshot] = (*Service)(nil)

// Save persists a snapshot to the filesystem.
func (s *Service) Save(ctx context.Context, snapshot *storage.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	dest := s.snapshotPath(snapshot.ID)
	if err := s.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save snapshot to file %s: %w", dest, err)
	}
	return nil
}

// Load retrieves a snapshot from the filesystem.
func (s *Service) Load(ctx context.Context, id string) (*storage.Snapshot, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	dest := s.snapshotPath(id)
	exists, err := s.fs.Exists(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to check if snapshot exists: %w", err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snapshot storage.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot data: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot from the filesystem.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	dest := s.snapshotPath(id)
	exists, err := s.fs.Exists(ctx, dest)
	if err != nil {
		return fmt.Errorf("failed to check if snapshot exists: %w", err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err := s.fs.Delete(ctx, dest); err != nil {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// List returns all snapshots from the filesystem. Undecodable documents are
// skipped so that one corrupt file does not hide the rest.
func (s *Service) List(ctx context.Context) ([]*storage.Snapshot, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot files: %w", err)
	}
	var snapshots []*storage.Snapshot
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			continue
		}
		var snapshot storage.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			continue
		}
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, nil
}

// snapshotPath returns the file path for a snapshot.
func (s *Service) snapshotPath(id string) string {
	return path.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// New creates a filesystem snapshot store rooted at basePath.
func New(basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	fs := afs.New()
	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	basePath = url.Normalize(basePath, file.Scheme)
	return &Service{basePath: basePath, fs: fs}, nil
}
