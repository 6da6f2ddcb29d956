package health

import (
	"context"
	"fmt"
	"time"

	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/rs/zerolog"
)

// ComponentName is the health component a Prober reports under
const ComponentName = "api-probe"

// Prober runs a Checker on an interval and publishes the outcome as a
// metrics health component
type Prober struct {
	checker Checker
	cfg     Config
	status  *Status
	logger  zerolog.Logger
}

// NewProber creates a prober for checker
func NewProber(checker Checker, cfg Config) *Prober {
	return &Prober{
		checker: checker,
		cfg:     cfg.withDefaults(),
		status:  NewStatus(),
		logger:  log.WithComponent("probe"),
	}
}

// New builds the checker named by probeType against the API base URL.
// probeType is "http" or "tcp".
func New(probeType, baseURL, token string, cfg Config) (*Prober, error) {
	var checker Checker
	switch CheckType(probeType) {
	case CheckTypeHTTP, "":
		checker = NewHTTPChecker(baseURL, "/namespaces", token)
	case CheckTypeTCP:
		tcp, err := NewTCPChecker(baseURL)
		if err != nil {
			return nil, err
		}
		checker = tcp
	default:
		return nil, fmt.Errorf("unknown probe type %q", probeType)
	}
	return NewProber(checker, cfg), nil
}

// Run probes immediately and then on every interval until ctx is done
func (p *Prober) Run(ctx context.Context) error {
	metrics.RegisterComponent(ComponentName, true, "not probed yet")

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.Probe(ctx)
	for {
		select {
		case <-ticker.C:
			p.Probe(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Probe runs one check and returns the updated status
func (p *Prober) Probe(ctx context.Context) Status {
	checkCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	result := p.checker.Check(checkCtx)
	changed := p.status.Observe(result, p.cfg.Threshold)
	metrics.UpdateComponent(ComponentName, p.status.Healthy, result.Message)

	if changed {
		event := p.logger.Info()
		if !p.status.Healthy {
			event = p.logger.Warn().Int("failures", p.status.Failures)
		}
		event.
			Str("type", string(p.checker.Type())).
			Bool("healthy", p.status.Healthy).
			Str("result", result.Message).
			Msg("Backend probe changed state")
	}
	return *p.status
}
