/*
Package health probes the orchestrator API independently of the poll views.

The dispatcher already marks the "backend" component unhealthy when a fetch
fails in transport, but it only learns that when a view polls. A Prober
checks reachability on its own interval, so /health and /ready reflect an
outage even when no view is mounted for a while.

Two checkers are available:

  - HTTPChecker issues an authenticated GET against a cheap list endpoint;
    any status below 400 counts as reachable
  - TCPChecker only dials the API host, for backends that reject anonymous
    probes or sit behind a proxy

A probe result flows into a Status. Health is lost after Threshold failures
in a row and restored by a single success:

	p, err := health.New("http", cfg.APIURL, cfg.Token, health.Config{
		Interval:  15 * time.Second,
		Threshold: 3,
	})
	g.Go(func() error { return p.Run(ctx) })

The outcome is published as the "api-probe" component of package metrics.
*/
package health
