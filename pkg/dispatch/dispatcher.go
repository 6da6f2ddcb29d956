package dispatch

import (
	"context"

	"github.com/cuemby/clusterview/pkg/client"
	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// backendComponent is the health component updated after every call
const backendComponent = "backend"

// Sink receives phase events. *state.Store implements it.
type Sink interface {
	Dispatch(a state.Action) *state.Snapshot
}

// Dispatcher wraps every fetcher call in a request/success/failure lifecycle
// and forwards each phase to a Sink. It keeps no memory of past calls and is
// safe for concurrent use.
type Dispatcher struct {
	client *client.Client
	sink   Sink
	logger zerolog.Logger
}

// New creates a dispatcher forwarding to sink
func New(c *client.Client, sink Sink) *Dispatcher {
	return &Dispatcher{
		client: c,
		sink:   sink,
		logger: log.WithComponent("dispatcher"),
	}
}

// perform runs call between a request phase and a success or failure phase.
// The returned error is the *state.Failure forwarded to the sink.
func perform[T any](ctx context.Context, d *Dispatcher, kind state.Kind, op state.Op,
	call func(context.Context) (T, error), success func(T) state.Action) error {
	id := uuid.New().String()
	ctx = client.WithRequestID(ctx, id)

	d.sink.Dispatch(state.Requested{K: kind, O: op, RequestID: id})

	timer := metrics.NewTimer()
	res, err := call(ctx)
	timer.ObserveDurationVec(metrics.FetchDuration, string(kind), string(op))

	if err != nil {
		reason := client.Reason(err)
		metrics.FetchFailures.WithLabelValues(string(kind), string(op), reason).Inc()
		if reason == "transport" {
			metrics.UpdateComponent(backendComponent, false, err.Error())
		}

		failure := state.NewFailure(err)
		d.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("op", string(op)).
			Str("request_id", id).
			Str("reason", reason).
			Msg("Operation failed")
		d.sink.Dispatch(state.Failed{K: kind, O: op, RequestID: id, Err: failure})
		return failure
	}

	metrics.UpdateComponent(backendComponent, true, "reachable")
	d.sink.Dispatch(success(res))
	return nil
}

// performNoResult is perform for calls that only return an error
func performNoResult(ctx context.Context, d *Dispatcher, kind state.Kind, op state.Op,
	call func(context.Context) error, success func() state.Action) error {
	return perform(ctx, d, kind, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, call(ctx) },
		func(struct{}) state.Action { return success() })
}

// ClearError resets the global error and every errored kind
func (d *Dispatcher) ClearError() {
	d.sink.Dispatch(state.ErrorCleared{})
}

// ClearKindError resets the error of one kind
func (d *Dispatcher) ClearKindError(kind state.Kind) {
	d.sink.Dispatch(state.ErrorCleared{K: kind})
}
