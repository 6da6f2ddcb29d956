// Package selectors derives read-only views from a state.Snapshot, such as
// the pods visible in the known namespaces and the pod search filter. The
// functions never mutate their input; PodSelector memoizes the pod view on
// the identity of the collections it reads.
package selectors
