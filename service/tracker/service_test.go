package tracker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stormon/model/notification"
	"github.com/viant/stormon/model/storage"
)

func memUpdate(datasetID, partition int, memSize int64) storage.BlockUpdate {
	return storage.BlockUpdate{
		ID:     storage.DatasetBlockID(datasetID, partition),
		Status: storage.BlockStatus{Level: storage.MemoryOnly, MemSize: memSize},
	}
}

func removal(datasetID, partition int) storage.BlockUpdate {
	return storage.BlockUpdate{
		ID:     storage.DatasetBlockID(datasetID, partition),
		Status: storage.BlockStatus{Level: storage.LevelNone},
	}
}

func TestService_PeakRetainedAfterBlockRemoval(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)

	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, 0, 300)})
	assert.Equal(t, int64(300), svc.PeakMemoryUsed("e1"))

	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{removal(1, 0)})
	assert.Equal(t, int64(300), svc.PeakMemoryUsed("e1"), "peak survives block removal")

	status := svc.StorageStatus("e1")
	assert.NotNil(t, status)
	assert.Equal(t, int64(0), status.MemUsed())
	assert.Equal(t, 0, status.NumBlocks())
}

func TestService_PeakComputedOverBatch(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)

	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{
		memUpdate(1, 0, 200),
		memUpdate(1, 1, 500),
	})
	assert.Equal(t, int64(700), svc.PeakMemoryUsed("e1"))

	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{removal(1, 0)})
	assert.Equal(t, int64(700), svc.PeakMemoryUsed("e1"), "peak retained through second batch")
	assert.Equal(t, int64(500), svc.StorageStatus("e1").MemUsed())
}

func TestService_PeakMonotonicWhileLive(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1<<20)

	var previous int64
	sizes := []int64{100, 700, 50, 300, 900, 10}
	for i, size := range sizes {
		svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, i, size)})
		svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{removal(1, i)})
		peak := svc.PeakMemoryUsed("e1")
		assert.GreaterOrEqual(t, peak, previous, "peak never decreases while executor stays live")
		previous = peak
	}
}

func TestService_NoStorageLevelNeverRetained(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)

	// An update that reports no storage for an unknown block must not insert it.
	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{removal(9, 9)})
	assert.Equal(t, 0, svc.StorageStatus("e1").NumBlocks())
}

func TestService_DuplicateAddResetsBlocks(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)
	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, 0, 100)})

	svc.OnExecutorAdded("e1", 1000)
	status := svc.StorageStatus("e1")
	assert.Equal(t, 0, status.NumBlocks(), "re-registration starts from an empty record")
	assert.Equal(t, int64(1000), status.MaxMemory)
}

func TestService_OrphanNotificationsAreNoOps(t *testing.T) {
	svc := New()

	assert.NotPanics(t, func() {
		svc.OnBlockStatusUpdated("ghost", []storage.BlockUpdate{memUpdate(1, 0, 100)})
		svc.OnDatasetUnpersisted(1)
		svc.OnExecutorRemoved("ghost")
		svc.OnTaskEnd(nil, nil)
		svc.OnTaskEnd(&notification.TaskInfo{ExecutorID: "ghost"}, nil)
		svc.OnTaskEnd(nil, &notification.TaskMetrics{})
	})
	assert.Equal(t, 0, svc.NumExecutors())
	assert.Equal(t, int64(0), svc.PeakMemoryUsed("ghost"))
}

func TestService_DatasetUnpersistStripsEveryExecutor(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)
	svc.OnExecutorAdded("e2", 1000)
	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(7, 0, 100), memUpdate(8, 0, 40)})
	svc.OnBlockStatusUpdated("e2", []storage.BlockUpdate{memUpdate(7, 1, 200)})

	svc.OnDatasetUnpersisted(7)

	assert.Equal(t, int64(40), svc.StorageStatus("e1").MemUsed(), "unrelated dataset untouched")
	assert.Equal(t, int64(0), svc.StorageStatus("e2").MemUsed())
	assert.Equal(t, int64(140), svc.PeakMemoryUsed("e1"), "peaks survive unpersist")
	assert.Equal(t, int64(200), svc.PeakMemoryUsed("e2"))
}

func TestService_PeakPolicyOnReregistration(t *testing.T) {
	testCases := []struct {
		name     string
		options  []Option
		expected int64
	}{
		{
			name:     "default resets peak",
			expected: 50,
		},
		{
			name:     "retention keeps old peak",
			options:  []Option{WithPeakRetention(true)},
			expected: 100,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(tc.options...)
			svc.OnExecutorAdded("e1", 1000)
			svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, 0, 100)})
			assert.Equal(t, int64(100), svc.PeakMemoryUsed("e1"))

			svc.OnExecutorRemoved("e1")
			svc.OnExecutorAdded("e1", 1000)
			svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(2, 0, 50)})
			assert.Equal(t, tc.expected, svc.PeakMemoryUsed("e1"))
		})
	}
}

func TestService_PeakRetainedAfterRemovalUntilReAdd(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)
	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, 0, 100)})
	svc.OnExecutorRemoved("e1")

	assert.Nil(t, svc.StorageStatus("e1"))
	assert.Equal(t, int64(100), svc.PeakMemoryUsed("e1"), "late readers still see the high-water mark")
}

func TestService_NotifyDispatch(t *testing.T) {
	svc := New()
	svc.Notify(notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 1000})
	svc.Notify(notification.TaskEnd{
		Info:    &notification.TaskInfo{ExecutorID: "e1"},
		Metrics: &notification.TaskMetrics{UpdatedBlocks: []storage.BlockUpdate{memUpdate(1, 0, 300)}},
	})
	assert.Equal(t, int64(300), svc.PeakMemoryUsed("e1"))

	svc.Notify(notification.DatasetUnpersisted{DatasetID: 1})
	assert.Equal(t, int64(0), svc.StorageStatus("e1").MemUsed())

	svc.Notify(notification.ExecutorRemoved{ExecutorID: "e1"})
	assert.Equal(t, 0, svc.NumExecutors())
}

func TestService_SnapshotIsolation(t *testing.T) {
	svc := New()
	svc.OnExecutorAdded("e1", 1000)
	svc.OnBlockStatusUpdated("e1", []storage.BlockUpdate{memUpdate(1, 0, 100)})

	statuses := svc.StorageStatuses()
	assert.Len(t, statuses, 1)
	statuses[0].Blocks[storage.DatasetBlockID(99, 0)] = storage.BlockStatus{Level: storage.MemoryOnly, MemSize: 1 << 30}

	assert.Equal(t, 1, svc.StorageStatus("e1").NumBlocks(), "mutating a snapshot must not leak into the tracker")

	snapshot := svc.Snapshot("snap-1")
	assert.Equal(t, "snap-1", snapshot.ID)
	assert.Len(t, snapshot.Statuses, 1)
	assert.Equal(t, int64(100), snapshot.Peaks["e1"].Bytes)
	assert.False(t, snapshot.TakenAt.IsZero())
}

func TestService_ConcurrentNotifications(t *testing.T) {
	svc := New()
	const executors = 8
	const rounds = 50

	var wg sync.WaitGroup
	for e := 0; e < executors; e++ {
		wg.Add(1)
		go func(e int) {
			defer wg.Done()
			id := fmt.Sprintf("e%d", e)
			svc.OnExecutorAdded(id, 1<<30)
			for r := 0; r < rounds; r++ {
				svc.OnBlockStatusUpdated(id, []storage.BlockUpdate{memUpdate(e, r, int64(r+1))})
				if r%10 == 9 {
					svc.OnDatasetUnpersisted(e)
				}
				_ = svc.StorageStatuses()
				_ = svc.PeakMemoryUsed(id)
			}
		}(e)
	}
	wg.Wait()

	assert.Equal(t, executors, svc.NumExecutors())
	for e := 0; e < executors; e++ {
		id := fmt.Sprintf("e%d", e)
		status := svc.StorageStatus(id)
		assert.NotNil(t, status)
		assert.GreaterOrEqual(t, svc.PeakMemoryUsed(id), status.MemUsed(), "peak >= current usage for live executors")
	}
}
