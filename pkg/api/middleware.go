package api

import (
	"net/http"
	"strconv"

	"github.com/cuemby/clusterview/pkg/metrics"
)

// knownPaths bounds the cardinality of the path label
var knownPaths = map[string]bool{
	"/health":      true,
	"/live":        true,
	"/ready":       true,
	"/metrics":     true,
	"/v1/snapshot": true,
	"/v1/status":   true,
	"/v1/pods":     true,
	"/v1/nodes":    true,
}

// readOnly rejects every method but GET and HEAD. Mutations go through the
// dispatcher, never through this server.
func readOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests by path and status code
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if !knownPaths[path] {
			path = "other"
		}
		metrics.APIRequestsTotal.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
	})
}
