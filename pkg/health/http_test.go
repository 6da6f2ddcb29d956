package health

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPChecker(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		healthy bool
	}{
		{"ok", http.StatusOK, true},
		{"redirect", http.StatusFound, true},
		{"unauthorized", http.StatusUnauthorized, false},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/namespaces", r.URL.Path)
				// Without a Location header the client does not follow a 302
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			result := NewHTTPChecker(server.URL+"/api/v1/", "/namespaces", "").Check(context.Background())
			assert.Equal(t, tt.healthy, result.Healthy, result.Message)
			assert.Positive(t, result.Duration)
		})
	}
}

func TestHTTPCheckerSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.True(t, NewHTTPChecker(server.URL, "namespaces", "secret").Check(context.Background()).Healthy)
	assert.False(t, NewHTTPChecker(server.URL, "namespaces", "").Check(context.Background()).Healthy)
}

func TestHTTPCheckerTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := NewHTTPChecker(server.URL, "/", "").Check(ctx)
	assert.False(t, result.Healthy)
	assert.Contains(t, result.Message, "request failed")
}

func TestTCPChecker(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	checker, err := NewTCPChecker("http://" + ln.Addr().String() + "/api/v1")
	require.NoError(t, err)
	assert.Equal(t, ln.Addr().String(), checker.Address)
	assert.True(t, checker.Check(context.Background()).Healthy)

	require.NoError(t, ln.Close())
	assert.False(t, checker.Check(context.Background()).Healthy)
}

func TestNewTCPCheckerDefaultPorts(t *testing.T) {
	c, err := NewTCPChecker("https://api.example.com/v1")
	require.NoError(t, err)
	assert.Equal(t, "api.example.com:443", c.Address)

	c, err = NewTCPChecker("http://api.example.com")
	require.NoError(t, err)
	assert.Equal(t, "api.example.com:80", c.Address)

	_, err = NewTCPChecker("/relative")
	assert.Error(t, err)
}

func TestStatusObserve(t *testing.T) {
	s := NewStatus()
	ok := Result{Healthy: true}
	bad := Result{Message: "down"}

	assert.False(t, s.Observe(bad, 2))
	assert.True(t, s.Healthy, "one failure is tolerated")
	assert.True(t, s.Observe(bad, 2))
	assert.False(t, s.Healthy)
	assert.Equal(t, 2, s.Failures)

	assert.True(t, s.Observe(ok, 2))
	assert.True(t, s.Healthy)
	assert.Zero(t, s.Failures)
	assert.Equal(t, 1, s.Successes)
}

type fakeChecker struct {
	results []bool
	calls   int
}

func (f *fakeChecker) Check(ctx context.Context) Result {
	healthy := f.results[f.calls%len(f.results)]
	f.calls++
	return Result{Healthy: healthy, Message: "fake"}
}

func (f *fakeChecker) Type() CheckType { return CheckTypeHTTP }

func TestProberUpdatesComponent(t *testing.T) {
	checker := &fakeChecker{results: []bool{false}}
	p := NewProber(checker, Config{Threshold: 2})

	p.Probe(context.Background())
	assert.Equal(t, "healthy", metrics.GetHealth().Components[ComponentName])

	status := p.Probe(context.Background())
	assert.False(t, status.Healthy)
	assert.Contains(t, metrics.GetHealth().Components[ComponentName], "unhealthy")
	assert.Equal(t, 2, checker.calls)
}

func TestProberRunStops(t *testing.T) {
	checker := &fakeChecker{results: []bool{true}}
	p := NewProber(checker, Config{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("prober did not stop")
	}
}

func TestNew(t *testing.T) {
	p, err := New("http", "http://localhost:8080/api/v1", "", Config{})
	require.NoError(t, err)
	assert.Equal(t, CheckTypeHTTP, p.checker.Type())
	assert.Equal(t, DefaultConfig(), p.cfg)

	p, err = New("tcp", "http://localhost:8080/api/v1", "", Config{})
	require.NoError(t, err)
	assert.Equal(t, CheckTypeTCP, p.checker.Type())

	_, err = New("exec", "http://localhost:8080", "", Config{})
	assert.Error(t, err)
}
