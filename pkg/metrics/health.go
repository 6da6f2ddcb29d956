package metrics

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Aggregate states reported by GetHealth and GetReadiness
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// DefaultCriticalComponents must be healthy before the process reports ready
var DefaultCriticalComponents = []string{"backend", "store"}

// HealthStatus is the aggregate state of the registered components
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components,omitempty"`
	Message    string            `json:"message,omitempty"`
	Version    string            `json:"version,omitempty"`
	Uptime     string            `json:"uptime,omitempty"`
}

// ComponentHealth is the last reported state of one component. Since is when
// Healthy last changed.
type ComponentHealth struct {
	Healthy bool
	Message string
	Since   time.Time
	Updated time.Time
}

type healthRegistry struct {
	mu         sync.RWMutex
	components map[string]ComponentHealth
	critical   []string
	started    time.Time
	version    string
}

var registry = newHealthRegistry()

func newHealthRegistry() *healthRegistry {
	return &healthRegistry{
		components: make(map[string]ComponentHealth),
		critical:   DefaultCriticalComponents,
		started:    time.Now(),
	}
}

func (r *healthRegistry) set(name string, healthy bool, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	comp := ComponentHealth{Healthy: healthy, Message: message, Since: now, Updated: now}
	if prev, ok := r.components[name]; ok && prev.Healthy == healthy {
		comp.Since = prev.Since
	}
	r.components[name] = comp
}

func (r *healthRegistry) status(status string) HealthStatus {
	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   r.version,
		Uptime:    time.Since(r.started).Round(time.Second).String(),
	}
}

// SetCriticalComponents replaces the components checked by GetReadiness
func SetCriticalComponents(names ...string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.critical = append([]string(nil), names...)
}

// SetVersion sets the version reported in health responses
func SetVersion(version string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.version = version
}

// RegisterComponent reports the state of a component, adding it if needed
func RegisterComponent(name string, healthy bool, message string) {
	registry.set(name, healthy, message)
}

// UpdateComponent reports a new state for a component
func UpdateComponent(name string, healthy bool, message string) {
	registry.set(name, healthy, message)
}

// Component returns the last reported state of name
func Component(name string) (ComponentHealth, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	comp, ok := registry.components[name]
	return comp, ok
}

// GetHealth reports unhealthy as soon as any registered component is
func GetHealth() HealthStatus {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := registry.status(StatusHealthy)
	out.Components = make(map[string]string, len(registry.components))
	for name, comp := range registry.components {
		if comp.Healthy {
			out.Components[name] = StatusHealthy
			continue
		}
		out.Status = StatusUnhealthy
		out.Components[name] = StatusUnhealthy + ": " + comp.Message
	}
	return out
}

// GetReadiness reports ready once every critical component is registered
// and healthy. Message names the first one that is not.
func GetReadiness() HealthStatus {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := registry.status(StatusReady)
	out.Components = make(map[string]string, len(registry.critical))

	critical := append([]string(nil), registry.critical...)
	sort.Strings(critical)
	for _, name := range critical {
		comp, ok := registry.components[name]
		switch {
		case !ok:
			out.Components[name] = "not registered"
		case !comp.Healthy:
			out.Components[name] = "not ready: " + comp.Message
		default:
			out.Components[name] = StatusReady
			continue
		}
		if out.Status == StatusReady {
			out.Status = StatusNotReady
			out.Message = "waiting for " + name
		}
	}
	return out
}

// LivenessHandler answers 200 for as long as the process runs
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "alive",
			"uptime": time.Since(registry.started).Round(time.Second).String(),
		})
	}
}
