package metrics

import (
	"time"
)

const defaultCollectInterval = 15 * time.Second

// SnapshotSource exposes the object counts of the cached snapshot
type SnapshotSource interface {
	// ObjectCounts returns the number of cached objects keyed by kind
	ObjectCounts() map[string]int
	// TrackedInterfaces returns the number of interfaces with a telemetry window
	TrackedInterfaces() int
}

// Collector periodically copies snapshot sizes into gauges
type Collector struct {
	source   SnapshotSource
	interval time.Duration
	stopCh   chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(source SnapshotSource, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = defaultCollectInterval
	}
	return &Collector{
		source:   source,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.Collect()

		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

// Collect takes one reading from the source
func (c *Collector) Collect() {
	for kind, n := range c.source.ObjectCounts() {
		SnapshotObjects.WithLabelValues(kind).Set(float64(n))
	}
	TrackedInterfaces.Set(float64(c.source.TrackedInterfaces()))
}
