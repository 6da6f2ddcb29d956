/*
Package client provides the resource fetchers of clusterview: a thin REST
client for the orchestrator API.

Each method performs exactly one HTTP call and returns the decoded payload or
an error. The client holds no cluster state; the dispatch package turns its
results into phase events for the state store.

# Usage

	c, err := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080/api/v1",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	nodes, order, err := c.ListNodes(ctx)

Keyed collections (nodes, pods, containers, deployments) are returned as maps
together with the key order the backend used, so name indexes can keep the
backend's ordering.

# Errors

Failures are classified so callers can tell them apart:

  - *TransportError: the request never produced a response
  - *StatusError: the backend answered with a non-2xx status
  - *LogicalError: a 2xx JSON object with "error": true, typically from a
    delete endpoint refusing the operation

Reason returns the class as a metrics label and IsLogical tests for the
last case.

# Correlation

A request ID attached with WithRequestID is sent as the X-Request-ID header so
backend logs can be matched with dispatcher logs and store events.
*/
package client
