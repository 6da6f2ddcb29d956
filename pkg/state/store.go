package state

import (
	"sync"

	"github.com/cuemby/clusterview/pkg/events"
	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/rs/zerolog"
)

// Store owns the cluster snapshot. Dispatch is the only way to change it;
// actions are applied one at a time in the order Dispatch is called.
type Store struct {
	mu     sync.RWMutex
	snap   *Snapshot
	broker *events.Broker
	logger zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithBroker publishes an event for every applied action
func WithBroker(b *events.Broker) Option {
	return func(s *Store) { s.broker = b }
}

// WithInitial seeds the store with a snapshot instead of the empty one
func WithInitial(snap *Snapshot) Option {
	return func(s *Store) {
		if snap != nil {
			s.snap = snap
		}
	}
}

// NewStore creates a store holding the empty snapshot
func NewStore(opts ...Option) *Store {
	s := &Store{
		snap:   NewSnapshot(),
		logger: log.WithComponent("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot. It must be treated as read-only.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Dispatch applies a to the current snapshot and returns the result
func (s *Store) Dispatch(a Action) *Snapshot {
	if a == nil {
		return s.Snapshot()
	}

	timer := metrics.NewTimer()
	s.mu.Lock()
	prev := s.snap
	next, stats := reduce(prev, a)
	s.snap = next
	s.mu.Unlock()
	timer.ObserveDuration(metrics.ReduceDuration)

	metrics.ActionsTotal.WithLabelValues(string(a.Kind()), string(a.Op()), string(a.Phase())).Inc()
	metrics.SamplesAppended.Add(float64(stats.Appended))
	metrics.SamplesEvicted.Add(float64(stats.Evicted))
	metrics.VirtualInterfacesDropped.Add(float64(stats.Dropped))

	if next == prev {
		return next
	}
	if _, ok := a.(Restored); ok {
		s.logger.Info().
			Int("nodes", len(next.Nodes)).
			Int("pods", len(next.Pods)).
			Msg("Snapshot restored from checkpoint")
	}
	s.publish(a)
	return next
}

// Restore adopts a checkpointed snapshot
func (s *Store) Restore(snap *Snapshot) *Snapshot {
	return s.Dispatch(Restored{Snapshot: snap})
}

// ClearError clears the global error and every errored kind
func (s *Store) ClearError() *Snapshot {
	return s.Dispatch(ErrorCleared{})
}

// ObjectCounts returns the number of cached objects per kind
func (s *Store) ObjectCounts() map[string]int {
	snap := s.Snapshot()
	return map[string]int{
		string(KindNode):       len(snap.Nodes),
		string(KindPod):        len(snap.Pods),
		string(KindContainer):  len(snap.Containers),
		string(KindService):    len(snap.Services),
		string(KindNamespace):  len(snap.Namespaces),
		string(KindConfigmap):  len(snap.Configmaps),
		string(KindDeployment): len(snap.Deployments),
	}
}

// TrackedInterfaces returns the number of node interfaces with a telemetry window
func (s *Store) TrackedInterfaces() int {
	n := 0
	for _, nics := range s.Snapshot().NodesNICs {
		n += len(nics)
	}
	return n
}

func (s *Store) publish(a Action) {
	if s.broker == nil {
		return
	}

	event := &events.Event{
		Metadata: map[string]string{
			"kind": string(a.Kind()),
			"op":   string(a.Op()),
		},
	}
	switch a := a.(type) {
	case Requested:
		event.Type = events.EventRequested
		event.Metadata["request_id"] = a.RequestID
	case Failed:
		event.Type = events.EventFailed
		event.Metadata["request_id"] = a.RequestID
		if a.Err != nil {
			event.Message = a.Err.Error()
		}
	case ErrorCleared:
		event.Type = events.EventErrorCleared
	case Restored:
		event.Type = events.EventRestored
	default:
		event.Type = events.EventSucceeded
	}
	s.broker.Publish(event)
}
