/*
Package state holds the cluster snapshot and the reducer that evolves it.

Every change to the snapshot is an Action: a phase-tagged event naming a
resource kind and an operation. The reducer is a pure function of the current
snapshot and one action; it returns a new snapshot and never mutates the one
it was given, so a snapshot handed to a reader stays valid forever.

# Lifecycle

Each operation emits a Requested action before any network I/O and then
either a typed success action or a Failed action:

	Requested ──▶ <Kind><Op>ed ──▶ Loaded
	          └─▶ Failed        ──▶ Errored ──(ErrorCleared)──▶ Idle

The snapshot carries a per-kind Status map as well as the process-wide
IsLoading and Err flags shared by every kind. A new request clears Err.

# Collections

Keyed kinds (nodes, pods, containers, deployments) are stored as a map plus
a name index in backend order. Sequence kinds (services, namespaces,
configmaps, pod and deployment records) are stored as slices and removed by
ID.

Node interface telemetry is merged with package telemetry rather than
replaced, so the samples seen between polls are kept in a bounded window.

# Store

Store serializes Dispatch calls, records metrics for each applied action and
publishes an event to an optional events.Broker:

	store := state.NewStore(state.WithBroker(broker))
	store.Dispatch(state.Requested{K: state.KindPod, O: state.OpFetchAll})
	snap := store.Snapshot()
*/
package state
