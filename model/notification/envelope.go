package notification

// Envelope is the transport form of a Notification: a tagged union whose
// concrete variant survives JSON round-trips on persistent queue vendors.
// Exactly one variant field is set; the others stay nil.
type Envelope struct {
	Kind               string              `json:"kind" yaml:"kind"`
	TaskEnd            *TaskEnd            `json:"taskEnd,omitempty" yaml:"taskEnd,omitempty"`
	DatasetUnpersisted *DatasetUnpersisted `json:"datasetUnpersisted,omitempty" yaml:"datasetUnpersisted,omitempty"`
	ExecutorAdded      *ExecutorAdded      `json:"executorAdded,omitempty" yaml:"executorAdded,omitempty"`
	ExecutorRemoved    *ExecutorRemoved    `json:"executorRemoved,omitempty" yaml:"executorRemoved,omitempty"`
}

// NewEnvelope wraps a notification for transport.
func NewEnvelope(n Notification) *Envelope {
	ret := &Envelope{Kind: Kind(n)}
	switch actual := n.(type) {
	case TaskEnd:
		ret.TaskEnd = &actual
	case DatasetUnpersisted:
		ret.DatasetUnpersisted = &actual
	case ExecutorAdded:
		ret.ExecutorAdded = &actual
	case ExecutorRemoved:
		ret.ExecutorRemoved = &actual
	}
	return ret
}

// Notification unwraps the envelope; ok is false when no variant is set
// (for example a document produced by a newer, unknown engine version).
func (e *Envelope) Notification() (Notification, bool) {
	switch {
	case e == nil:
		return nil, false
	case e.TaskEnd != nil:
		return *e.TaskEnd, true
	case e.DatasetUnpersisted != nil:
		return *e.DatasetUnpersisted, true
	case e.ExecutorAdded != nil:
		return *e.ExecutorAdded, true
	case e.ExecutorRemoved != nil:
		return *e.ExecutorRemoved, true
	default:
		return nil, false
	}
}

// ExecutorID returns the executor the notification concerns, when one does.
func (e *Envelope) ExecutorID() string {
	switch {
	case e == nil:
		return ""
	case e.TaskEnd != nil && e.TaskEnd.Info != nil:
		return e.TaskEnd.Info.ExecutorID
	case e.ExecutorAdded != nil:
		return e.ExecutorAdded.ExecutorID
	case e.ExecutorRemoved != nil:
		return e.ExecutorRemoved.ExecutorID
	default:
		return ""
	}
}
