package stormon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stormon/model/notification"
	"github.com/viant/stormon/model/storage"
)

func TestService_EndToEnd(t *testing.T) {
	srv, err := New()
	assert.NoError(t, err)
	defer srv.Shutdown()

	ctx := context.Background()
	notifications := []notification.Notification{
		notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 1000},
		notification.TaskEnd{
			Info: &notification.TaskInfo{TaskID: "t1", ExecutorID: "e1"},
			Metrics: &notification.TaskMetrics{UpdatedBlocks: []storage.BlockUpdate{
				{ID: storage.DatasetBlockID(1, 0), Status: storage.BlockStatus{Level: storage.MemoryOnly, MemSize: 300}},
			}},
		},
		// Partial payloads must flow through the pipeline as no-ops.
		notification.TaskEnd{},
		notification.DatasetUnpersisted{DatasetID: 1},
	}
	for _, n := range notifications {
		assert.NoError(t, srv.Publish(ctx, n))
	}

	// Allow the consumption goroutine to drain the topic.
	assert.Eventually(t, func() bool {
		status := srv.Tracker().StorageStatus("e1")
		return status != nil && status.MemUsed() == 0 && srv.Tracker().PeakMemoryUsed("e1") == 300
	}, time.Second, 10*time.Millisecond)

	snapshot, err := srv.TakeSnapshot(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, snapshot.ID)
	assert.Len(t, snapshot.Statuses, 1)
	assert.Equal(t, int64(300), snapshot.Peaks["e1"].Bytes)

	stored, err := srv.Snapshots().Load(ctx, snapshot.ID)
	assert.NoError(t, err)
	assert.Equal(t, snapshot.Peaks, stored.Peaks)
}

func TestService_SynchronousNotify(t *testing.T) {
	srv, err := New()
	assert.NoError(t, err)
	defer srv.Shutdown()

	srv.Notify(notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 500})
	srv.Notify(notification.TaskEnd{
		Info: &notification.TaskInfo{ExecutorID: "e1"},
		Metrics: &notification.TaskMetrics{UpdatedBlocks: []storage.BlockUpdate{
			{ID: storage.DatasetBlockID(2, 1), Status: storage.BlockStatus{Level: storage.MemoryAndDisk, MemSize: 80, DiskSize: 40}},
		}},
	})

	status := srv.Tracker().StorageStatus("e1")
	assert.Equal(t, int64(80), status.MemUsed())
	assert.Equal(t, int64(40), status.DiskUsed())
	assert.Equal(t, int64(80), srv.Tracker().PeakMemoryUsed("e1"))
}

func TestService_PeakRetentionOption(t *testing.T) {
	config := DefaultConfig()
	config.Tracker.RetainPeaks = true
	srv, err := New(WithConfig(config))
	assert.NoError(t, err)
	defer srv.Shutdown()

	srv.Notify(notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 1000})
	srv.Notify(notification.TaskEnd{
		Info: &notification.TaskInfo{ExecutorID: "e1"},
		Metrics: &notification.TaskMetrics{UpdatedBlocks: []storage.BlockUpdate{
			{ID: storage.DatasetBlockID(1, 0), Status: storage.BlockStatus{Level: storage.MemoryOnly, MemSize: 100}},
		}},
	})
	srv.Notify(notification.ExecutorRemoved{ExecutorID: "e1"})
	srv.Notify(notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 1000})

	assert.Equal(t, int64(100), srv.Tracker().PeakMemoryUsed("e1"))
}
