package storage

import "time"

// PeakMemory records the highest memory usage observed for one executor and
// when the high-water mark was established. The value is monotonically
// non-decreasing for the lifetime of the entry.
type PeakMemory struct {
	Bytes      int64     `json:"bytes" yaml:"bytes"`
	ObservedAt time.Time `json:"observedAt" yaml:"observedAt"`
}
