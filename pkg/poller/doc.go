/*
Package poller keeps views of the cluster fresh by re-running their fetch on a
fixed interval.

A Controller runs one timer per mounted view. Mounting a view fetches
immediately and then every Config.IntervalMs milliseconds (5000 when unset).
Unmount tears the timer down deterministically: it returns only after the
view's goroutine has exited, so no fetch starts afterwards.

	ctrl := poller.NewController(poller.Config{IntervalMs: 5000})
	view, err := ctrl.Mount(ctx, "pods", dispatcher.FetchPods)
	...
	view.Stop()

Fetch errors are only logged at debug level; the dispatcher already reports
them through the store.
*/
package poller
