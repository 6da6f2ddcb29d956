package health

import (
	"context"
	"time"
)

// CheckType names the kind of probe
type CheckType string

const (
	CheckTypeHTTP CheckType = "http"
	CheckTypeTCP  CheckType = "tcp"
)

// Result is the outcome of a single probe
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker probes the orchestrator API
type Checker interface {
	Check(ctx context.Context) Result
	Type() CheckType
}

// Config controls how often the backend is probed and how many failures
// in a row mark it down
type Config struct {
	Interval  time.Duration
	Timeout   time.Duration
	Threshold int
}

// DefaultConfig probes every 15s and tolerates two failures in a row
func DefaultConfig() Config {
	return Config{
		Interval:  15 * time.Second,
		Timeout:   5 * time.Second,
		Threshold: 3,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Threshold <= 0 {
		c.Threshold = def.Threshold
	}
	return c
}

// Status accumulates probe results
type Status struct {
	Failures  int
	Successes int
	Healthy   bool
	Last      Result
}

// NewStatus starts out healthy
func NewStatus() *Status {
	return &Status{Healthy: true}
}

// Observe records r and reports whether Healthy flipped. A single success
// restores health; threshold failures in a row take it away.
func (s *Status) Observe(r Result, threshold int) bool {
	was := s.Healthy
	s.Last = r
	if r.Healthy {
		s.Successes++
		s.Failures = 0
		s.Healthy = true
	} else {
		s.Failures++
		s.Successes = 0
		if s.Failures >= threshold {
			s.Healthy = false
		}
	}
	return was != s.Healthy
}
