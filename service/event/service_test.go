package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stormon/service/messaging"
)

type testSignal struct {
	ExecutorID string
}

func TestService_PublishListen(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	assert.NoError(t, err)

	var mux sync.Mutex
	var received []string
	listener, err := ListenOn[testSignal](svc, "signals", func(e *Event[testSignal]) {
		mux.Lock()
		received = append(received, e.Data.ExecutorID)
		mux.Unlock()
	})
	assert.NoError(t, err)
	defer listener.Stop()

	publisher, err := PublisherOf[testSignal](svc, "signals")
	assert.NoError(t, err)

	ctx := context.Background()
	for _, id := range []string{"e1", "e2", "e3"} {
		err = publisher.Publish(ctx, NewEvent(&Context{Topic: "signals"}, testSignal{ExecutorID: id}))
		assert.NoError(t, err)
	}

	// Allow the consumption goroutine to drain the topic.
	time.Sleep(100 * time.Millisecond)

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, []string{"e1", "e2", "e3"}, received)
}

func TestService_TopicTypeMismatch(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	assert.NoError(t, err)

	_, err = QueueOf[testSignal](svc, "shared")
	assert.NoError(t, err)

	_, err = QueueOf[int](svc, "shared")
	assert.Error(t, err, "a topic is bound to a single payload type")
}

func TestService_UnsupportedVendor(t *testing.T) {
	_, err := New(messaging.Vendor("carrier-pigeon"))
	assert.Error(t, err)
}
