package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/selectors"
	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
	"github.com/rs/zerolog"
)

// SnapshotReader provides the current cluster snapshot
type SnapshotReader interface {
	Snapshot() *state.Snapshot
}

// Server is the read-only HTTP surface over the cluster snapshot
type Server struct {
	store    SnapshotReader
	selector *selectors.PodSelector
	version  string
	mux      *http.ServeMux
	logger   zerolog.Logger
}

// NewServer creates a server reading from store
func NewServer(store SnapshotReader, version string) *Server {
	s := &Server{
		store:    store,
		selector: selectors.NewPodSelector(),
		version:  version,
		mux:      http.NewServeMux(),
		logger:   log.WithComponent("api"),
	}

	s.mux.HandleFunc("/health", s.healthHandler)
	s.mux.Handle("/live", metrics.LivenessHandler())
	s.mux.HandleFunc("/ready", s.readyHandler)
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/v1/snapshot", s.snapshotHandler)
	s.mux.HandleFunc("/v1/status", s.statusHandler)
	s.mux.HandleFunc("/v1/pods", s.podsHandler)
	s.mux.HandleFunc("/v1/nodes", s.nodesHandler)

	return s
}

// Handler returns the HTTP handler with request accounting applied
func (s *Server) Handler() http.Handler {
	return instrument(readOnly(s.mux))
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Status server listening")
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down status server: %w", err)
		}
		return nil
	}
}

// PodsResponse is the body of /v1/pods
type PodsResponse struct {
	Names []string   `json:"names"`
	Pods  types.Pods `json:"pods"`
}

// StatusResponse is the body of /v1/status
type StatusResponse struct {
	IsLoading bool                            `json:"isLoading"`
	Error     string                          `json:"error,omitempty"`
	Kinds     map[state.Kind]state.KindStatus `json:"kinds"`
}

// NodesResponse is the body of /v1/nodes
type NodesResponse struct {
	Names []string        `json:"names"`
	Nodes types.Nodes     `json:"nodes"`
	NICs  types.NodesNICs `json:"nics"`
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	resp := StatusResponse{
		IsLoading: snap.IsLoading,
		Kinds:     make(map[state.Kind]state.KindStatus, len(state.Kinds)),
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	for _, k := range state.Kinds {
		resp.Kinds[k] = snap.StatusOf(k)
	}
	writeJSON(w, http.StatusOK, resp)
}

// podsHandler serves the visible pods, optionally filtered with
// ?field=pod|container|node|namespace&q=text
func (s *Server) podsHandler(w http.ResponseWriter, r *http.Request) {
	pods, names := s.selector.Select(s.store.Snapshot())

	query := r.URL.Query()
	if text := query.Get("q"); text != "" {
		names = selectors.FilterPodNames(pods, names, selectors.ParsePodField(query.Get("field")), text)
		filtered := make(types.Pods, len(names))
		for _, name := range names {
			filtered[name] = pods[name]
		}
		pods = filtered
	}

	writeJSON(w, http.StatusOK, PodsResponse{Names: names, Pods: pods})
}

func (s *Server) nodesHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, NodesResponse{
		Names: snap.AllNodes,
		Nodes: snap.Nodes,
		NICs:  snap.NodesNICs,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
