package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *state.Store {
	store := state.NewStore()
	store.Dispatch(state.PodsFetched{
		Pods: types.Pods{
			"web-0": {PodName: "web-0", Namespace: "dev", Node: "worker-1", Containers: []string{"nginx"}},
			"web-1": {PodName: "web-1", Namespace: "dev", Node: "worker-2", Containers: []string{"nginx"}},
			"db-0":  {PodName: "db-0", Namespace: "prod", Node: "worker-1", Containers: []string{"postgres"}},
		},
		Order: []string{"web-0", "web-1", "db-0"},
	})
	store.Dispatch(state.NamespacesFetched{Namespaces: []types.Namespace{{ID: "1", Name: "dev"}}})
	store.Dispatch(state.NodesFetched{
		Nodes: types.Nodes{"worker-1": {Detail: types.NodeDetail{Hostname: "worker-1"}}},
		Order: []string{"worker-1"},
	})
	return store
}

func get(t *testing.T, h http.Handler, target string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w.Code
}

func TestPodsEndpoint(t *testing.T) {
	h := NewServer(newTestStore(), "").Handler()

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "visible namespaces only", target: "/v1/pods", want: []string{"web-0", "web-1"}},
		{name: "filter by node", target: "/v1/pods?field=node&q=worker-2", want: []string{"web-1"}},
		{name: "filter by pod name default field", target: "/v1/pods?q=web-0", want: []string{"web-0"}},
		{name: "no match", target: "/v1/pods?field=container&q=postgres", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp PodsResponse
			require.Equal(t, http.StatusOK, get(t, h, tt.target, &resp))
			assert.Equal(t, tt.want, resp.Names)
			assert.Len(t, resp.Pods, len(tt.want))
		})
	}
}

func TestSnapshotAndStatusEndpoints(t *testing.T) {
	store := newTestStore()
	store.Dispatch(state.Failed{K: state.KindService, O: state.OpFetchAll, Err: &state.Failure{Message: "boom"}})
	h := NewServer(store, "").Handler()

	var snap state.Snapshot
	require.Equal(t, http.StatusOK, get(t, h, "/v1/snapshot", &snap))
	assert.Equal(t, []string{"web-0", "web-1", "db-0"}, snap.AllPods)
	require.NotNil(t, snap.Err)
	assert.Equal(t, "boom", snap.Err.Message)

	var status StatusResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/status", &status))
	assert.Equal(t, "boom", status.Error)
	assert.Equal(t, state.KindErrored, status.Kinds[state.KindService].Phase)
	assert.Equal(t, state.KindLoaded, status.Kinds[state.KindPod].Phase)

	var nodes NodesResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/nodes", &nodes))
	assert.Equal(t, []string{"worker-1"}, nodes.Names)
}

func TestReadOnly(t *testing.T) {
	h := NewServer(newTestStore(), "").Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/pods", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewServer(newTestStore(), "").Handler()
	assert.Equal(t, http.StatusOK, get(t, h, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope", nil))
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(newTestStore(), "")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
