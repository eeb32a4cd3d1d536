package tracker

import (
	"sync"

	"github.com/viant/stormon/internal/clock"
	"github.com/viant/stormon/model/notification"
	"github.com/viant/stormon/model/storage"
)

// Service tracks the live storage status of every executor together with a
// table of all-time peak memory usage. It implements an in-memory monitor
// only: state changes always originate from engine notifications, never from
// the tracker itself.
//
// All operations are safe for concurrent use. Handlers never return errors;
// malformed or unknown references degrade to no-ops by contract.
type Service struct {
	mux         sync.Mutex
	statuses    map[string]*storage.ExecutorStorageStatus
	peaks       map[string]storage.PeakMemory
	retainPeaks bool
}

// Compile-time check that the tracker consumes the full notification set.
var _ notification.Consumer = (*Service)(nil)

// New returns an empty tracker.
func New(options ...Option) *Service {
	ret := &Service{
		statuses: map[string]*storage.ExecutorStorageStatus{},
		peaks:    map[string]storage.PeakMemory{},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Notify dispatches one engine notification to the matching handler.
func (s *Service) Notify(n notification.Notification) {
	switch actual := n.(type) {
	case notification.TaskEnd:
		s.OnTaskEnd(actual.Info, actual.Metrics)
	case notification.DatasetUnpersisted:
		s.OnDatasetUnpersisted(actual.DatasetID)
	case notification.ExecutorAdded:
		s.OnExecutorAdded(actual.ExecutorID, actual.MaxMemory)
	case notification.ExecutorRemoved:
		s.OnExecutorRemoved(actual.ExecutorID)
	}
}

// OnExecutorAdded registers a fresh, empty storage record for the executor.
// Registration is last-writer-wins: a duplicate add replaces any existing
// record rather than merging with it. Under the default policy a re-add also
// starts a fresh peak entry; WithPeakRetention(true) carries the old peak
// across re-registrations instead.
func (s *Service) OnExecutorAdded(executorID string, maxMemory int64) {
	if executorID == "" {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	s.statuses[executorID] = storage.NewExecutorStorageStatus(executorID, maxMemory)
	if !s.retainPeaks {
		delete(s.peaks, executorID)
	}
}

// OnExecutorRemoved drops the executor's storage record; absent executors
// are a no-op. The peak entry is retained so that late readers still see the
// dead executor's high-water mark until (under the default policy) the same
// id registers again.
func (s *Service) OnExecutorRemoved(executorID string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.statuses, executorID)
}

// OnBlockStatusUpdated applies a batch of block-level deltas to the
// executor's record. Updates whose storage level denotes no storage remove
// the block. The whole batch is ignored when the executor is unknown. After
// the batch is applied the peak table is recomputed for every tracked
// executor, not only the touched one - a single batch may be attributed to
// one executor while the engine reports on behalf of several.
func (s *Service) OnBlockStatusUpdated(executorID string, updates []storage.BlockUpdate) {
	if len(updates) == 0 {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	status, ok := s.statuses[executorID]
	if !ok {
		return
	}
	for _, update := range updates {
		status.ApplyBlockUpdate(update.ID, update.Status)
	}
	s.updatePeaks()
}

// OnDatasetUnpersisted removes every block of the dataset from every tracked
// executor, then recomputes the peak table.
func (s *Service) OnDatasetUnpersisted(datasetID int) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, status := range s.statuses {
		for _, id := range status.DatasetBlocks(datasetID) {
			status.RemoveBlock(id)
		}
	}
	s.updatePeaks()
}

// OnTaskEnd reacts to task completion. Notifications without task info,
// without metrics or with an empty update list carry no storage delta and
// are ignored.
func (s *Service) OnTaskEnd(info *notification.TaskInfo, metrics *notification.TaskMetrics) {
	if info == nil || metrics == nil || len(metrics.UpdatedBlocks) == 0 {
		return
	}
	s.OnBlockStatusUpdated(info.ExecutorID, metrics.UpdatedBlocks)
}

// StorageStatuses returns a point-in-time snapshot of all tracked storage
// records. The returned clones do not reflect subsequent mutations.
func (s *Service) StorageStatuses() []*storage.ExecutorStorageStatus {
	s.mux.Lock()
	defer s.mux.Unlock()

	out := make([]*storage.ExecutorStorageStatus, 0, len(s.statuses))
	for _, status := range s.statuses {
		out = append(out, status.Clone())
	}
	return out
}

// StorageStatus returns a clone of one executor's record, or nil when the
// executor is not tracked.
func (s *Service) StorageStatus(executorID string) *storage.ExecutorStorageStatus {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.statuses[executorID].Clone()
}

// PeakMemoryUsed returns the highest memory usage ever observed for the
// executor, or zero when nothing was recorded.
func (s *Service) PeakMemoryUsed(executorID string) int64 {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.peaks[executorID].Bytes
}

// PeakMemory returns the executor's peak entry and whether one exists.
func (s *Service) PeakMemory(executorID string) (storage.PeakMemory, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	peak, ok := s.peaks[executorID]
	return peak, ok
}

// Peaks returns a copy of the whole peak table.
func (s *Service) Peaks() map[string]storage.PeakMemory {
	s.mux.Lock()
	defer s.mux.Unlock()

	out := make(map[string]storage.PeakMemory, len(s.peaks))
	for id, peak := range s.peaks {
		out[id] = peak
	}
	return out
}

// NumExecutors returns the number of currently tracked executors.
func (s *Service) NumExecutors() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.statuses)
}

// Snapshot exports the full tracked state as one consistent unit.
func (s *Service) Snapshot(id string) *storage.Snapshot {
	s.mux.Lock()
	defer s.mux.Unlock()

	statuses := make([]*storage.ExecutorStorageStatus, 0, len(s.statuses))
	for _, status := range s.statuses {
		statuses = append(statuses, status.Clone())
	}
	peaks := make(map[string]storage.PeakMemory, len(s.peaks))
	for executorID, peak := range s.peaks {
		peaks[executorID] = peak
	}
	return &storage.Snapshot{ID: id, TakenAt: clock.Now(), Statuses: statuses, Peaks: peaks}
}

// updatePeaks raises the stored peak of every tracked executor whose current
// memory usage exceeds it. Full pass on every mutating notification so the
// peak invariant holds regardless of which executor a batch was attributed
// to. Caller must hold s.mux.
func (s *Service) updatePeaks() {
	for executorID, status := range s.statuses {
		memUsed := status.MemUsed()
		if memUsed > s.peaks[executorID].Bytes {
			s.peaks[executorID] = storage.PeakMemory{Bytes: memUsed, ObservedAt: clock.Now()}
		}
	}
}
