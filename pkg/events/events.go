package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventRequested       EventType = "store.requested"
	EventSucceeded       EventType = "store.succeeded"
	EventFailed          EventType = "store.failed"
	EventErrorCleared    EventType = "store.error_cleared"
	EventRestored        EventType = "store.restored"
	EventViewMounted     EventType = "view.mounted"
	EventViewUnmounted   EventType = "view.unmounted"
	EventCheckpointSaved EventType = "checkpoint.saved"
)

// Event is a notification that the snapshot or a view changed
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Message   string
	Metadata  map[string]string
}

// Subscriber receives the events it subscribed to
type Subscriber chan *Event

const (
	queueSize      = 100
	subscriberSize = 50
)

// subscription is the delivery state of one Subscriber
type subscription struct {
	types   map[EventType]bool // nil accepts every type
	skipped int
}

func (s *subscription) accepts(t EventType) bool {
	return s.types == nil || s.types[t]
}

// Broker fans events out to subscribers. Neither Publish nor delivery ever
// blocks: a full queue drops the event, a full subscriber skips it.
type Broker struct {
	mu       sync.RWMutex
	subs     map[Subscriber]*subscription
	queue    chan *Event
	stopCh   chan struct{}
	stopOnce sync.Once
	dropped  atomic.Uint64
}

// NewBroker creates a broker. Events are queued but not delivered until Start.
func NewBroker() *Broker {
	return &Broker{
		subs:   make(map[Subscriber]*subscription),
		queue:  make(chan *Event, queueSize),
		stopCh: make(chan struct{}),
	}
}

// Start runs the delivery loop
func (b *Broker) Start() {
	go func() {
		for {
			select {
			case event := <-b.queue:
				b.deliver(event)
			case <-b.stopCh:
				return
			}
		}
	}()
}

// Stop ends delivery. It is safe to call more than once.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}

// Subscribe returns a channel receiving events of the given types, or of
// every type when none is given
func (b *Broker) Subscribe(types ...EventType) Subscriber {
	sub := &subscription{}
	if len(types) > 0 {
		sub.types = make(map[EventType]bool, len(types))
		for _, t := range types {
			sub.types[t] = true
		}
	}

	ch := make(Subscriber, subscriberSize)
	b.mu.Lock()
	b.subs[ch] = sub
	b.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it
func (b *Broker) Unsubscribe(ch Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish stamps the event and queues it for delivery
func (b *Broker) Publish(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case b.queue <- event:
	case <-b.stopCh:
	default:
		b.dropped.Add(1)
	}
}

func (b *Broker) deliver(event *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch, sub := range b.subs {
		if !sub.accepts(event.Type) {
			continue
		}
		select {
		case ch <- event:
		default:
			sub.skipped++
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns the number of events published while the queue was full
func (b *Broker) Dropped() uint64 {
	return b.dropped.Load()
}

// Skipped returns the number of events ch missed because its buffer was full
func (b *Broker) Skipped(ch Subscriber) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if sub, ok := b.subs[ch]; ok {
		return sub.skipped
	}
	return 0
}
