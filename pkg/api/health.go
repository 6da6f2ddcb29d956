package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/state"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version,omitempty"`
	Uptime     string            `json:"uptime,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// healthHandler always answers 200 while the process is alive. An unreachable
// backend shows up as "degraded" with the failing component listed.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := metrics.GetHealth()
	status := "healthy"
	if health.Status != "healthy" {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Version:    s.version,
		Uptime:     health.Uptime,
		Components: health.Components,
	})
}

// readyHandler reports ready once the critical components are healthy and at
// least one kind has been loaded
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	readiness := metrics.GetReadiness()

	checks := make(map[string]string, len(readiness.Components)+2)
	for name, status := range readiness.Components {
		checks[name] = status
	}
	ready := readiness.Status == "ready"
	message := readiness.Message

	if s.store == nil {
		checks["snapshot"] = "not initialized"
		ready = false
		if message == "" {
			message = "Store not initialized"
		}
	} else {
		snap := s.store.Snapshot()
		loaded := 0
		for _, k := range state.Kinds {
			if snap.StatusOf(k).Phase == state.KindLoaded {
				loaded++
			}
		}
		if loaded == 0 {
			checks["snapshot"] = "waiting for first fetch"
			ready = false
			if message == "" {
				message = "No resource kind loaded yet"
			}
		} else {
			checks["snapshot"] = fmt.Sprintf("%d/%d kinds loaded", loaded, len(state.Kinds))
		}
		if snap.Err != nil {
			checks["error"] = snap.Err.Error()
		}
	}

	status := "ready"
	code := http.StatusOK
	if !ready {
		status = "not ready"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, ReadyResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	})
}
