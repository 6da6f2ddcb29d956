package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuemby/clusterview/pkg/events"
	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/state"
	"github.com/rs/zerolog"
)

const defaultCheckpointInterval = 30 * time.Second

// SnapshotSource provides the snapshot to checkpoint
type SnapshotSource interface {
	Snapshot() *state.Snapshot
}

// Restorer adopts a loaded checkpoint
type Restorer interface {
	Restore(snap *state.Snapshot) *state.Snapshot
}

// Checkpointer periodically saves the current snapshot to a Store
type Checkpointer struct {
	store    Store
	source   SnapshotSource
	interval time.Duration
	broker   *events.Broker
	logger   zerolog.Logger

	last *state.Snapshot
}

// NewCheckpointer creates a checkpointer saving source to store every interval
func NewCheckpointer(store Store, source SnapshotSource, interval time.Duration, broker *events.Broker) *Checkpointer {
	if interval <= 0 {
		interval = defaultCheckpointInterval
	}
	return &Checkpointer{
		store:    store,
		source:   source,
		interval: interval,
		broker:   broker,
		logger:   log.WithComponent("storage"),
	}
}

// Run saves a checkpoint on every tick and once more when ctx is done
func (c *Checkpointer) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Checkpoint(); err != nil {
				c.logger.Warn().Err(err).Msg("Checkpoint failed")
			}
		case <-ctx.Done():
			if err := c.Checkpoint(); err != nil {
				return fmt.Errorf("failed to save final checkpoint: %w", err)
			}
			return nil
		}
	}
}

// Checkpoint saves the current snapshot unless it was already saved. Run and
// Checkpoint must not be called concurrently.
func (c *Checkpointer) Checkpoint() error {
	snap := c.source.Snapshot()
	if snap == c.last {
		metrics.CheckpointsTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	timer := metrics.NewTimer()
	err := c.store.Save(snap)
	timer.ObserveDuration(metrics.CheckpointDuration)
	if err != nil {
		metrics.CheckpointsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.CheckpointsTotal.WithLabelValues("success").Inc()
	c.last = snap

	c.logger.Debug().
		Int("nodes", len(snap.Nodes)).
		Int("pods", len(snap.Pods)).
		Dur("duration", timer.Duration()).
		Msg("Checkpoint saved")

	if c.broker != nil {
		c.broker.Publish(&events.Event{
			Type:    events.EventCheckpointSaved,
			Message: fmt.Sprintf("%d nodes, %d pods", len(snap.Nodes), len(snap.Pods)),
		})
	}
	return nil
}

// Restore loads the checkpoint of store into target. It reports false when
// there is no checkpoint yet.
func Restore(store Store, target Restorer) (bool, error) {
	snap, err := store.Load()
	if errors.Is(err, ErrNoCheckpoint) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	target.Restore(snap)
	return true, nil
}
