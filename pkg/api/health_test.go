package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markHealthy(t *testing.T) {
	t.Helper()
	metrics.SetCriticalComponents("backend", "store")
	metrics.RegisterComponent("backend", true, "reachable")
	metrics.RegisterComponent("store", true, "ready")
}

// TestHealthHandler tests the /health endpoint
func TestHealthHandler(t *testing.T) {
	markHealthy(t)
	s := NewServer(nil, "0.3.0")

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{
			name:           "GET request succeeds",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST request fails",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "DELETE request fails",
			method:         http.MethodDelete,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response HealthResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, "healthy", response.Status)
				assert.Equal(t, "0.3.0", response.Version)
				assert.NotZero(t, response.Timestamp)
				assert.Equal(t, "healthy", response.Components["backend"])
			}
		})
	}
}

func TestHealthHandlerDegraded(t *testing.T) {
	markHealthy(t)
	metrics.UpdateComponent("backend", false, "connection refused")
	defer metrics.UpdateComponent("backend", true, "reachable")

	w := httptest.NewRecorder()
	NewServer(nil, "").Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "degraded", response.Status)
	assert.Contains(t, response.Components["backend"], "connection refused")
}

func TestLiveHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewServer(nil, "").Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}

// TestReadyHandlerNoStore tests readiness without a store
func TestReadyHandlerNoStore(t *testing.T) {
	markHealthy(t)
	s := NewServer(nil, "")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	s.readyHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response ReadyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "not ready", response.Status)
	assert.Equal(t, "not initialized", response.Checks["snapshot"])
	assert.NotEmpty(t, response.Message)
}

func TestReadyHandler(t *testing.T) {
	markHealthy(t)
	store := state.NewStore()
	s := NewServer(store, "")

	get := func() (int, ReadyResponse) {
		w := httptest.NewRecorder()
		s.readyHandler(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		var response ReadyResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		return w.Code, response
	}

	code, response := get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "waiting for first fetch", response.Checks["snapshot"])

	store.Dispatch(state.NamespacesFetched{Namespaces: []types.Namespace{{ID: "1", Name: "dev"}}})
	code, response = get()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", response.Status)
	assert.Equal(t, "1/7 kinds loaded", response.Checks["snapshot"])
	assert.Equal(t, "ready", response.Checks["backend"])

	// A stored error is reported without affecting readiness
	store.Dispatch(state.Failed{K: state.KindPod, O: state.OpFetchAll, Err: &state.Failure{Message: "timeout"}})
	code, response = get()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "timeout", response.Checks["error"])

	metrics.UpdateComponent("backend", false, "connection refused")
	defer metrics.UpdateComponent("backend", true, "reachable")
	code, response = get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, response.Checks["backend"], "connection refused")
}
