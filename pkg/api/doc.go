/*
Package api exposes the cluster snapshot over a read-only HTTP server for
presentation code and operators.

# Endpoints

	GET /health       liveness, always 200 while the process runs
	GET /ready        503 until the critical components are healthy and at
	                  least one resource kind has been loaded
	GET /metrics      Prometheus metrics
	GET /v1/snapshot  the full snapshot as JSON
	GET /v1/status    global loading flag, global error and per-kind status
	GET /v1/pods      pods in the known namespaces, in backend order;
	                  ?q=text&field=pod|container|node|namespace filters them
	GET /v1/nodes     nodes with their interface telemetry windows

Every other method is rejected with 405: changes to the cluster go through
the dispatch package, never through this server. Requests are counted in
clusterview_api_requests_total by path and status code.

# Usage

	srv := api.NewServer(store, version)
	if err := srv.Run(ctx, "127.0.0.1:9090"); err != nil {
		return err
	}

Run shuts the listener down gracefully when ctx is done.
*/
package api
