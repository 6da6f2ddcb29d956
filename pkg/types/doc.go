/*
Package types defines the records clusterview caches from the orchestrator's
REST API.

The types mirror the backend's JSON payloads: nodes with resource accounting
and network interfaces, pods, containers, services, namespaces, configmaps and
deployments, plus the records the backend keeps in its secondary store
(PodRecord, DeploymentRecord).

# Collections

Keyed collections (Nodes, Pods, Containers, Deployments) map a resource name
to its record. Services, namespaces and configmaps arrive as ordered slices
and are identified by their ID field.

# Telemetry

Every NIC carries a NICTraffic value with four counter series:

	receiveBytesTotal     []Sample
	transmitBytesTotal    []Sample
	receivePacketsTotal   []Sample
	transmitPacketsTotal  []Sample

Samples are timestamped in Unix seconds. The telemetry package owns the
windowing and merge rules applied to these series.

# Delete Envelopes

Delete endpoints answer 2xx with a DeleteEnvelope. A truthy Error flag is a
logical failure and must be handled as such by callers:

	{"error": true, "message": "in use"}
	{"id": "ns-1"}
*/
package types
