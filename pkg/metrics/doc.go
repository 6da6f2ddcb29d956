/*
Package metrics provides Prometheus metrics and component health for
clusterview.

All metrics are package-level collectors registered with the default
registry at init and exposed by Handler on the status server's /metrics
endpoint.

# Architecture

	┌──────────────────── METRICS ────────────────────────────┐
	│                                                          │
	│  state.Store ──────▶ actions, reduce latency,            │
	│                      telemetry samples appended/evicted  │
	│                                                          │
	│  dispatch ─────────▶ fetch latency, fetch failures       │
	│                      (by kind, op and reason)            │
	│                                                          │
	│  poller ───────────▶ poll ticks, active views            │
	│                                                          │
	│  storage ──────────▶ checkpoint latency and outcomes     │
	│                                                          │
	│  Collector ────────▶ snapshot object counts,             │
	│   (periodic)         tracked interfaces                  │
	│                                                          │
	│  api ──────────────▶ status server requests              │
	│                                                          │
	└──────────────────────────┬───────────────────────────────┘
	                           ▼
	                  GET /metrics (promhttp)

# Metrics

Store:
  - clusterview_actions_total{kind,op,phase}
  - clusterview_reduce_duration_seconds
  - clusterview_telemetry_samples_appended_total
  - clusterview_telemetry_samples_evicted_total
  - clusterview_virtual_interfaces_dropped_total

Snapshot (set by Collector):
  - clusterview_snapshot_objects{kind}
  - clusterview_tracked_interfaces

Backend calls:
  - clusterview_fetch_duration_seconds{kind,op}
  - clusterview_fetch_failures_total{kind,op,reason}

Polling and checkpoints:
  - clusterview_poll_ticks_total{view}
  - clusterview_active_views
  - clusterview_checkpoint_duration_seconds
  - clusterview_checkpoints_total{result}

Status server:
  - clusterview_api_requests_total{path,status}

# Timing

	timer := metrics.NewTimer()
	res, err := call(ctx)
	timer.ObserveDurationVec(metrics.FetchDuration, "pod", "fetch")

# Health

Components register their health by name. The dispatcher marks "backend"
unhealthy on transport failures and healthy again on the next successful
call; the watch command registers "store" once the checkpoint is restored.

	metrics.RegisterComponent("backend", false, "no response yet")
	metrics.UpdateComponent("backend", true, "reachable")

GetReadiness reports ready only when every critical component is registered
and healthy. GetHealth lists every component. LivenessHandler answers 200 as
long as the process runs.
*/
package metrics
