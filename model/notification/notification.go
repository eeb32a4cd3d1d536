// Package notification defines the closed set of engine notifications the
// monitor understands. The set is sealed via an unexported marker method so
// that handlers can dispatch with an exhaustive type switch.
package notification

import "github.com/viant/stormon/model/storage"

// Notification is one of: TaskEnd, DatasetUnpersisted, ExecutorAdded,
// ExecutorRemoved.
type Notification interface {
	notificationMarker()
}

// Consumer receives engine notifications. Implementations must tolerate
// nil or partial payloads and must never panic - monitoring may not
// destabilize the engine it observes.
type Consumer interface {
	Notify(n Notification)
}

// TaskInfo identifies where a finished task ran. Only ExecutorID is
// significant to the monitor; the remaining fields are informative.
type TaskInfo struct {
	TaskID     string `json:"taskId,omitempty" yaml:"taskId,omitempty"`
	ExecutorID string `json:"executorId" yaml:"executorId"`
	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
}

// TaskMetrics carries the block-level storage deltas a task produced.
type TaskMetrics struct {
	UpdatedBlocks []storage.BlockUpdate `json:"updatedBlocks,omitempty" yaml:"updatedBlocks,omitempty"`
}

// TaskEnd reports task completion. Info or Metrics may be nil when the
// engine lost them; such notifications degrade to no-ops.
type TaskEnd struct {
	Info    *TaskInfo    `json:"info,omitempty" yaml:"info,omitempty"`
	Metrics *TaskMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// DatasetUnpersisted reports that a logical dataset was evicted; all of its
// blocks are gone from every executor.
type DatasetUnpersisted struct {
	DatasetID int `json:"datasetId" yaml:"datasetId"`
}

// ExecutorAdded reports a new executor together with its advertised storage
// capacity.
type ExecutorAdded struct {
	ExecutorID string `json:"executorId" yaml:"executorId"`
	MaxMemory  int64  `json:"maxMemory" yaml:"maxMemory"`
}

// ExecutorRemoved reports that an executor left the cluster.
type ExecutorRemoved struct {
	ExecutorID string `json:"executorId" yaml:"executorId"`
}

func (TaskEnd) notificationMarker()            {}
func (DatasetUnpersisted) notificationMarker() {}
func (ExecutorAdded) notificationMarker()      {}
func (ExecutorRemoved) notificationMarker()    {}

// Kind returns a short stable name for the notification variant, used for
// event routing and trace attributes.
func Kind(n Notification) string {
	switch n.(type) {
	case TaskEnd:
		return "taskEnd"
	case DatasetUnpersisted:
		return "datasetUnpersisted"
	case ExecutorAdded:
		return "executorAdded"
	case ExecutorRemoved:
		return "executorRemoved"
	default:
		return "unknown"
	}
}
