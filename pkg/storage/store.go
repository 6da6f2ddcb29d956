package storage

import (
	"errors"
	"time"

	"github.com/cuemby/clusterview/pkg/state"
)

// ErrNoCheckpoint is returned by Load when nothing has been saved yet
var ErrNoCheckpoint = errors.New("no checkpoint found")

// Store persists the last-known-good cluster snapshot
type Store interface {
	// Save replaces the stored checkpoint with snap
	Save(snap *state.Snapshot) error

	// Load returns the stored checkpoint or ErrNoCheckpoint
	Load() (*state.Snapshot, error)

	// SavedAt returns when the checkpoint was written, or the zero time
	SavedAt() (time.Time, error)

	Close() error
}
