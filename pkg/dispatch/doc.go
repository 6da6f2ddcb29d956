/*
Package dispatch runs cluster operations through a three-phase lifecycle.

Every operation emits a state.Requested event before any network I/O, calls
one fetcher of the client package, and then emits either the success event of
its kind (carrying the typed payload) or a state.Failed event carrying the
normalized error. All phases are forwarded to a Sink, normally the
*state.Store.

Deletes are special: the backend may answer 2xx with an envelope whose error
flag is set. The client reports that as a *client.LogicalError and the
dispatcher turns it into a failure phase with the envelope message, so the
snapshot keeps the record.

Each operation gets a fresh request ID that is sent to the backend as
X-Request-ID, attached to the Requested and Failed events, and logged on
failure. Fetch latency and failures are exported as Prometheus metrics and
transport failures mark the "backend" health component unhealthy.
*/
package dispatch
