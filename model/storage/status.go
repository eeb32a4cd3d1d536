package storage

// BlockStatus captures where one block currently resides and how much space
// it occupies there.
type BlockStatus struct {
	Level    Level `json:"level" yaml:"level"`
	MemSize  int64 `json:"memSize" yaml:"memSize"`
	DiskSize int64 `json:"diskSize" yaml:"diskSize"`
}

// IsCached reports whether the block is still retained somewhere. A status
// with an invalid level is a removal notice, not a storage record.
func (s BlockStatus) IsCached() bool {
	return s.Level.IsValid()
}

// BlockUpdate is one (block, status) pair reported by task metrics.
type BlockUpdate struct {
	ID     BlockID     `json:"id" yaml:"id"`
	Status BlockStatus `json:"status" yaml:"status"`
}

// ExecutorStorageStatus is the live storage record of a single executor. The
// type is not internally synchronized - the tracker mutates it only inside
// its own critical section and read accessors hand out clones.
type ExecutorStorageStatus struct {
	ExecutorID string `json:"executorId" yaml:"executorId"`

	// MaxMemory is the capacity advertised when the executor registered;
	// immutable for the record's lifetime.
	MaxMemory int64 `json:"maxMemory" yaml:"maxMemory"`

	// Blocks maps block id to its last reported status. Mutate only via
	// ApplyBlockUpdate/RemoveBlock so that the no-storage invariant holds.
	Blocks map[BlockID]BlockStatus `json:"blocks" yaml:"blocks"`
}

// NewExecutorStorageStatus returns an empty record for a registered executor.
func NewExecutorStorageStatus(executorID string, maxMemory int64) *ExecutorStorageStatus {
	return &ExecutorStorageStatus{
		ExecutorID: executorID,
		MaxMemory:  maxMemory,
		Blocks:     map[BlockID]BlockStatus{},
	}
}

// ApplyBlockUpdate upserts the block with the reported status; a status whose
// level denotes no storage removes the block instead, so that blocks at
// LevelNone are never retained.
func (e *ExecutorStorageStatus) ApplyBlockUpdate(id BlockID, status BlockStatus) {
	if !status.IsCached() {
		delete(e.Blocks, id)
		return
	}
	e.Blocks[id] = status
}

// RemoveBlock drops the block from the record; absent blocks are a no-op.
func (e *ExecutorStorageStatus) RemoveBlock(id BlockID) {
	delete(e.Blocks, id)
}

// DatasetBlocks returns the ids of all retained blocks belonging to the
// given dataset.
func (e *ExecutorStorageStatus) DatasetBlocks(datasetID int) []BlockID {
	var ids []BlockID
	for id := range e.Blocks {
		if id.BelongsTo(datasetID) {
			ids = append(ids, id)
		}
	}
	return ids
}

// MemUsed returns the total memory occupied by the retained blocks.
func (e *ExecutorStorageStatus) MemUsed() int64 {
	var total int64
	for _, status := range e.Blocks {
		total += status.MemSize
	}
	return total
}

// DiskUsed returns the total disk space occupied by the retained blocks.
func (e *ExecutorStorageStatus) DiskUsed() int64 {
	var total int64
	for _, status := range e.Blocks {
		total += status.DiskSize
	}
	return total
}

// MemRemaining returns the advertised capacity minus the memory in use.
func (e *ExecutorStorageStatus) MemRemaining() int64 {
	return e.MaxMemory - e.MemUsed()
}

// NumBlocks returns the number of retained blocks.
func (e *ExecutorStorageStatus) NumBlocks() int {
	return len(e.Blocks)
}

// Clone returns a deep copy safe to hand to external readers.
func (e *ExecutorStorageStatus) Clone() *ExecutorStorageStatus {
	if e == nil {
		return nil
	}
	blocks := make(map[BlockID]BlockStatus, len(e.Blocks))
	for id, status := range e.Blocks {
		blocks[id] = status
	}
	return &ExecutorStorageStatus{
		ExecutorID: e.ExecutorID,
		MaxMemory:  e.MaxMemory,
		Blocks:     blocks,
	}
}
