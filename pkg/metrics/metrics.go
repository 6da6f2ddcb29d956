package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Store metrics
	ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterview_actions_total",
			Help: "Total number of actions applied to the store by kind, operation and phase",
		},
		[]string{"kind", "op", "phase"},
	)

	ReduceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clusterview_reduce_duration_seconds",
			Help:    "Time taken to apply one action to the snapshot in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
	)

	SnapshotObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clusterview_snapshot_objects",
			Help: "Number of cached objects by kind",
		},
		[]string{"kind"},
	)

	// Telemetry metrics
	TrackedInterfaces = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clusterview_tracked_interfaces",
			Help: "Number of physical node interfaces with a telemetry window",
		},
	)

	SamplesAppended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clusterview_telemetry_samples_appended_total",
			Help: "Total number of telemetry samples appended to a window",
		},
	)

	SamplesEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clusterview_telemetry_samples_evicted_total",
			Help: "Total number of telemetry samples evicted from a full window",
		},
	)

	VirtualInterfacesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clusterview_virtual_interfaces_dropped_total",
			Help: "Total number of virtual interfaces discarded during merges",
		},
	)

	// Fetcher metrics
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clusterview_fetch_duration_seconds",
			Help:    "Backend request duration in seconds by kind and operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "op"},
	)

	FetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterview_fetch_failures_total",
			Help: "Total number of failed backend requests by kind, operation and reason",
		},
		[]string{"kind", "op", "reason"},
	)

	// Poller metrics
	PollTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterview_poll_ticks_total",
			Help: "Total number of poll invocations by view",
		},
		[]string{"view"},
	)

	ActiveViews = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clusterview_active_views",
			Help: "Number of mounted polling views",
		},
	)

	// Checkpoint metrics
	CheckpointDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clusterview_checkpoint_duration_seconds",
			Help:    "Time taken to write a snapshot checkpoint in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CheckpointsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterview_checkpoints_total",
			Help: "Total number of snapshot checkpoints by result",
		},
		[]string{"result"},
	)

	// Status server metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterview_api_requests_total",
			Help: "Total number of status API requests by path and status",
		},
		[]string{"path", "status"},
	)
)

func init() {
	prometheus.MustRegister(ActionsTotal)
	prometheus.MustRegister(ReduceDuration)
	prometheus.MustRegister(SnapshotObjects)
	prometheus.MustRegister(TrackedInterfaces)
	prometheus.MustRegister(SamplesAppended)
	prometheus.MustRegister(SamplesEvicted)
	prometheus.MustRegister(VirtualInterfacesDropped)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(FetchFailures)
	prometheus.MustRegister(PollTicksTotal)
	prometheus.MustRegister(ActiveViews)
	prometheus.MustRegister(CheckpointDuration)
	prometheus.MustRegister(CheckpointsTotal)
	prometheus.MustRegister(APIRequestsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
