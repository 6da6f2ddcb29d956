package state

import (
	"sort"

	"github.com/cuemby/clusterview/pkg/types"
)

// Snapshot is the last-known-good state of the cluster. A snapshot handed out
// by the reducer or the Store is read-only: callers must not mutate its
// collections in place.
type Snapshot struct {
	Nodes     types.Nodes     `json:"nodes"`
	NodesNICs types.NodesNICs `json:"nodesNics"`

	Pods       types.Pods        `json:"pods"`
	PodsNICs   types.PodsNICs    `json:"podsNics"`
	PodRecords []types.PodRecord `json:"podRecords"`

	Containers types.Containers `json:"containers"`

	Deployments       types.Deployments        `json:"deployments"`
	DeploymentRecords []types.DeploymentRecord `json:"deploymentRecords"`

	Services   []types.Service   `json:"services"`
	Namespaces []types.Namespace `json:"namespaces"`
	Configmaps []types.Configmap `json:"configmaps"`

	// Name indexes of the keyed collections, in backend order
	AllNodes       []string `json:"allNodes"`
	AllPods        []string `json:"allPods"`
	AllContainers  []string `json:"allContainers"`
	AllDeployments []string `json:"allDeployments"`

	// Process-wide flags shared by every kind
	IsLoading bool     `json:"isLoading"`
	Err       *Failure `json:"error,omitempty"`

	Status map[Kind]KindStatus `json:"status"`
}

// NewSnapshot returns the empty initial snapshot
func NewSnapshot() *Snapshot {
	status := make(map[Kind]KindStatus, len(Kinds))
	for _, k := range Kinds {
		status[k] = KindStatus{Phase: KindIdle}
	}
	return &Snapshot{
		Nodes:             types.Nodes{},
		NodesNICs:         types.NodesNICs{},
		Pods:              types.Pods{},
		PodsNICs:          types.PodsNICs{},
		PodRecords:        []types.PodRecord{},
		Containers:        types.Containers{},
		Deployments:       types.Deployments{},
		DeploymentRecords: []types.DeploymentRecord{},
		Services:          []types.Service{},
		Namespaces:        []types.Namespace{},
		Configmaps:        []types.Configmap{},
		AllNodes:          []string{},
		AllPods:           []string{},
		AllContainers:     []string{},
		AllDeployments:    []string{},
		Status:            status,
	}
}

// StatusOf returns the lifecycle status of a kind
func (s *Snapshot) StatusOf(k Kind) KindStatus {
	if st, ok := s.Status[k]; ok {
		return st
	}
	return KindStatus{Phase: KindIdle}
}

// withStatus returns a shallow copy of s with a fresh status map
func (s *Snapshot) withStatus(k Kind, st KindStatus) *Snapshot {
	next := *s
	next.Status = make(map[Kind]KindStatus, len(s.Status)+1)
	for kind, v := range s.Status {
		next.Status[kind] = v
	}
	if k != "" {
		next.Status[k] = st
	}
	return &next
}

// orderedKeys returns the keys of m, first in the order given, then any
// remaining keys sorted. Names in order that are not keys of m are skipped.
func orderedKeys[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range order {
		if _, ok := m[name]; ok && !seen[name] {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
