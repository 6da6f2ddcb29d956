package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetHealth() {
	registry = newHealthRegistry()
}

func TestRegisterComponent(t *testing.T) {
	resetHealth()

	RegisterComponent("backend", true, "reachable")

	require.Len(t, registry.components, 1)
	comp, ok := Component("backend")
	require.True(t, ok)
	assert.True(t, comp.Healthy)
	assert.Equal(t, "reachable", comp.Message)

	_, ok = Component("store")
	assert.False(t, ok)
}

func TestGetHealth(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]bool
		expected   string
	}{
		{
			name:       "all healthy",
			components: map[string]bool{"backend": true, "store": true},
			expected:   "healthy",
		},
		{
			name:       "backend unreachable",
			components: map[string]bool{"backend": false, "store": true},
			expected:   "unhealthy",
		},
		{
			name:       "nothing registered",
			components: map[string]bool{},
			expected:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetHealth()
			SetVersion("1.0.0")
			for name, healthy := range tt.components {
				RegisterComponent(name, healthy, "")
			}

			health := GetHealth()

			assert.Equal(t, tt.expected, health.Status)
			assert.Len(t, health.Components, len(tt.components))
			assert.Equal(t, "1.0.0", health.Version)
		})
	}
}

func TestGetReadiness(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]bool
		expected   string
	}{
		{
			name:       "all critical ready",
			components: map[string]bool{"backend": true, "store": true},
			expected:   "ready",
		},
		{
			name:       "store not registered",
			components: map[string]bool{"backend": true},
			expected:   "not_ready",
		},
		{
			name:       "backend failing",
			components: map[string]bool{"backend": false, "store": true},
			expected:   "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetHealth()
			for name, healthy := range tt.components {
				RegisterComponent(name, healthy, "last fetch failed")
			}

			readiness := GetReadiness()

			assert.Equal(t, tt.expected, readiness.Status)
			if tt.expected != "ready" {
				assert.NotEmpty(t, readiness.Message)
			}
		})
	}
}

func TestSetCriticalComponents(t *testing.T) {
	resetHealth()
	SetCriticalComponents("store")

	RegisterComponent("store", true, "")

	assert.Equal(t, "ready", GetReadiness().Status)
}

func TestLivenessHandler(t *testing.T) {
	resetHealth()

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	w := httptest.NewRecorder()
	LivenessHandler()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "alive", response["status"])
	assert.NotEmpty(t, response["uptime"])
}

func TestUpdateComponent(t *testing.T) {
	resetHealth()

	RegisterComponent("backend", true, "ok")
	first, _ := Component("backend")

	UpdateComponent("backend", true, "still ok")
	same, _ := Component("backend")
	assert.Equal(t, first.Since, same.Since, "Since only moves when health flips")
	assert.Equal(t, "still ok", same.Message)

	UpdateComponent("backend", false, "timeout")
	comp, _ := Component("backend")
	assert.False(t, comp.Healthy)
	assert.Equal(t, "timeout", comp.Message)
	assert.False(t, comp.Since.Before(same.Since))
}

func TestGetReadinessNamesFirstMissing(t *testing.T) {
	resetHealth()
	SetCriticalComponents("store", "backend")

	readiness := GetReadiness()
	assert.Equal(t, StatusNotReady, readiness.Status)
	assert.Equal(t, "waiting for backend", readiness.Message)
	assert.Equal(t, "not registered", readiness.Components["store"])
}
