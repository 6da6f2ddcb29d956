package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDelivers(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(&Event{Type: EventSucceeded, Metadata: map[string]string{"kind": "pod"}})

	select {
	case ev := <-sub:
		assert.Equal(t, EventSucceeded, ev.Type)
		assert.Equal(t, "pod", ev.Metadata["kind"])
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBrokerSubscriberCount(t *testing.T) {
	b := NewBroker()

	s1 := b.Subscribe()
	s2 := b.Subscribe()
	assert.Equal(t, 2, b.SubscriberCount())

	b.Unsubscribe(s1)
	b.Unsubscribe(s1)
	assert.Equal(t, 1, b.SubscriberCount())

	b.Unsubscribe(s2)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBrokerStopIsIdempotent(t *testing.T) {
	b := NewBroker()
	b.Start()

	b.Stop()
	b.Stop()

	// Publish after stop must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			b.Publish(&Event{Type: EventRequested})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "publish blocked after stop")
	}
}

func TestBrokerFiltersByType(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	views := b.Subscribe(EventViewMounted, EventViewUnmounted)
	defer b.Unsubscribe(views)

	b.Publish(&Event{Type: EventSucceeded})
	b.Publish(&Event{Type: EventViewMounted, Metadata: map[string]string{"view": "pods"}})

	select {
	case ev := <-views:
		assert.Equal(t, EventViewMounted, ev.Type)
		assert.Equal(t, "pods", ev.Metadata["view"])
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBrokerDropsWhenQueueFull(t *testing.T) {
	b := NewBroker()

	// Not started: nothing drains the queue
	for i := 0; i < queueSize+5; i++ {
		b.Publish(&Event{Type: EventRequested})
	}
	assert.Equal(t, uint64(5), b.Dropped())
}

func TestBrokerSkipsFullSubscriber(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe()

	for i := 0; i < subscriberSize+3; i++ {
		b.deliver(&Event{Type: EventSucceeded})
	}
	assert.Equal(t, 3, b.Skipped(sub))
	assert.Len(t, sub, subscriberSize)

	b.Unsubscribe(sub)
	assert.Zero(t, b.Skipped(sub))
}
