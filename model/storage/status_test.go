package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutorStorageStatus(t *testing.T) {
	status := NewExecutorStorageStatus("e1", 1000)

	status.ApplyBlockUpdate(DatasetBlockID(1, 0), BlockStatus{Level: MemoryOnly, MemSize: 200})
	status.ApplyBlockUpdate(DatasetBlockID(1, 1), BlockStatus{Level: MemoryAndDisk, MemSize: 300, DiskSize: 100})
	status.ApplyBlockUpdate(NamedBlockID(KindBroadcast, "7"), BlockStatus{Level: MemoryOnlySer, MemSize: 50})

	assert.Equal(t, 3, status.NumBlocks())
	assert.Equal(t, int64(550), status.MemUsed())
	assert.Equal(t, int64(100), status.DiskUsed())
	assert.Equal(t, int64(450), status.MemRemaining())
	assert.ElementsMatch(t, []BlockID{DatasetBlockID(1, 0), DatasetBlockID(1, 1)}, status.DatasetBlocks(1))
	assert.Empty(t, status.DatasetBlocks(2))

	// A no-storage update is a removal, never an insertion.
	status.ApplyBlockUpdate(DatasetBlockID(1, 0), BlockStatus{Level: LevelNone})
	status.ApplyBlockUpdate(DatasetBlockID(5, 5), BlockStatus{})
	assert.Equal(t, 2, status.NumBlocks())
	assert.Equal(t, int64(350), status.MemUsed())

	status.RemoveBlock(NamedBlockID(KindBroadcast, "7"))
	assert.Equal(t, int64(300), status.MemUsed())
}

func TestExecutorStorageStatus_Clone(t *testing.T) {
	status := NewExecutorStorageStatus("e1", 1000)
	status.ApplyBlockUpdate(DatasetBlockID(1, 0), BlockStatus{Level: MemoryOnly, MemSize: 200})

	clone := status.Clone()
	clone.ApplyBlockUpdate(DatasetBlockID(1, 1), BlockStatus{Level: MemoryOnly, MemSize: 999})

	assert.Equal(t, 1, status.NumBlocks())
	assert.Equal(t, 2, clone.NumBlocks())

	var nilStatus *ExecutorStorageStatus
	assert.Nil(t, nilStatus.Clone())
}

func TestLevel_IsValid(t *testing.T) {
	assert.False(t, LevelNone.IsValid())
	assert.False(t, Level{UseMemory: true}.IsValid(), "no replica means no storage")
	assert.False(t, Level{Replication: 1}.IsValid())
	assert.True(t, MemoryOnly.IsValid())
	assert.True(t, DiskOnly.IsValid())
	assert.Equal(t, "None", LevelNone.String())
}
