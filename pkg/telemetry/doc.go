/*
Package telemetry implements the bounded sliding window kept for NIC traffic
counters and the incremental merge that folds freshly fetched node interfaces
into the tracked set.

The backend reports counter samples on its own cadence, independent of node
metadata. Replacing the tracked series wholesale on every poll would drop the
samples seen between polls, so the merge is additive:

  - virtual interfaces are discarded and never tracked
  - an interface seen for the first time is inserted with its series as received
  - for a tracked interface, each of the four counters independently appends the
    incoming samples newer than its most recent retained sample, then evicts
    from the front until at most MaxSamples remain
  - nodes and interfaces absent from the payload are left untouched

Merge mutates the NodesNICs it is given. Callers hand it a private working
copy; the state package is the only caller.
*/
package telemetry
