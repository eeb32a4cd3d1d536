package storage

import "time"

// Snapshot is a point-in-time export of the tracked storage state, suitable
// for dashboards or offline inspection. A snapshot is immutable once taken;
// it never feeds state back into the tracker.
type Snapshot struct {
	ID       string                   `json:"id" yaml:"id"`
	TakenAt  time.Time                `json:"takenAt" yaml:"takenAt"`
	Statuses []*ExecutorStorageStatus `json:"statuses" yaml:"statuses"`
	Peaks    map[string]PeakMemory    `json:"peaks" yaml:"peaks"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	statuses := make([]*ExecutorStorageStatus, 0, len(s.Statuses))
	for _, status := range s.Statuses {
		statuses = append(statuses, status.Clone())
	}
	peaks := make(map[string]PeakMemory, len(s.Peaks))
	for id, peak := range s.Peaks {
		peaks[id] = peak
	}
	return &Snapshot{
		ID:       s.ID,
		TakenAt:  s.TakenAt,
		Statuses: statuses,
		Peaks:    peaks,
	}
}
