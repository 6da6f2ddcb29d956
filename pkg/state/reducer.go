package state

import (
	"github.com/cuemby/clusterview/pkg/telemetry"
	"github.com/cuemby/clusterview/pkg/types"
)

// Reduce applies a to s and returns the next snapshot. It never mutates s and
// never fails: actions it does not recognize return s unchanged.
func Reduce(s *Snapshot, a Action) *Snapshot {
	next, _ := reduce(s, a)
	return next
}

func reduce(s *Snapshot, a Action) (*Snapshot, telemetry.MergeStats) {
	var stats telemetry.MergeStats
	if s == nil {
		s = NewSnapshot()
	}
	if a == nil {
		return s, stats
	}

	switch a := a.(type) {
	case Requested:
		next := s.withStatus(a.K, KindStatus{Phase: KindLoading})
		next.IsLoading = true
		next.Err = nil
		return next, stats

	case Failed:
		next := s.withStatus(a.K, KindStatus{Phase: KindErrored, Err: a.Err})
		next.IsLoading = false
		next.Err = a.Err
		return next, stats

	case ErrorCleared:
		next := s.withStatus("", KindStatus{})
		for k, st := range next.Status {
			if (a.K == "" || a.K == k) && st.Phase == KindErrored {
				next.Status[k] = KindStatus{Phase: KindIdle}
			}
		}
		next.Err = nil
		return next, stats

	case Restored:
		return restore(a.Snapshot), stats
	}

	next := loaded(s, a.Kind())

	switch a := a.(type) {
	// Nodes
	case NodesFetched:
		nics := s.NodesNICs.Clone()
		stats = telemetry.MergeAll(nics, a.Nodes)
		next.Nodes = physicalNodes(a.Nodes)
		next.AllNodes = orderedKeys(next.Nodes, a.Order)
		next.NodesNICs = nics
	case NodeNICsFetched:
		nics := copyNodesNICs(s.NodesNICs, a.Node)
		stats = telemetry.Merge(nics, a.Node, a.NICs)
		next.NodesNICs = nics

	// Pods
	case PodsFetched:
		next.Pods = joinPodRecords(a.Pods, s.PodRecords)
		next.AllPods = orderedKeys(next.Pods, a.Order)
		next.PodsNICs = make(types.PodsNICs, len(a.Pods))
		for name, pod := range a.Pods {
			if pod != nil {
				next.PodsNICs[name] = pod.NICs
			}
		}
	case PodFetched:
		if a.Pod == nil {
			break
		}
		pod := withPodMetadata(a.Pod, s.PodRecords)
		next.Pods = copyMap(s.Pods)
		next.Pods[pod.PodName] = pod
		// Appended unconditionally: a repeated fetch of the same pod repeats the name
		next.AllPods = appendCopy(s.AllPods, pod.PodName)
		next.PodsNICs = copyMap(s.PodsNICs)
		next.PodsNICs[pod.PodName] = pod.NICs
	case PodRecordsFetched:
		next.PodRecords = a.Records
		next.Pods = joinPodRecords(s.Pods, a.Records)
	case PodCreated, PodRemovedByName:
	case PodRemoved:
		next.PodRecords = removeByID(s.PodRecords, a.ID, func(r types.PodRecord) string { return r.ID })

	// Containers
	case ContainersFetched:
		next.Containers = a.Containers
		next.AllContainers = orderedKeys(a.Containers, a.Order)
	case ContainerFetched:
		if a.Container == nil {
			break
		}
		next.Containers = copyMap(s.Containers)
		next.Containers[a.Container.Detail.ContainerName] = a.Container

	// Services
	case ServicesFetched:
		next.Services = a.Services
	case ServiceCreated:
		next.Services = appendCopy(s.Services, a.Service)
	case ServiceRemoved:
		next.Services = removeByID(s.Services, a.ID, func(r types.Service) string { return r.ID })

	// Namespaces
	case NamespacesFetched:
		next.Namespaces = a.Namespaces
	case NamespaceCreated:
		next.Namespaces = appendCopy(s.Namespaces, a.Namespace)
	case NamespaceRemoved:
		next.Namespaces = removeByID(s.Namespaces, a.ID, func(r types.Namespace) string { return r.ID })

	// Configmaps
	case ConfigmapsFetched:
		next.Configmaps = a.Configmaps
	case ConfigmapCreated:
		next.Configmaps = appendCopy(s.Configmaps, a.Configmap)
	case ConfigmapRemoved:
		next.Configmaps = removeByID(s.Configmaps, a.ID, func(r types.Configmap) string { return r.ID })

	// Deployments
	case DeploymentsFetched:
		next.Deployments = a.Deployments
		next.AllDeployments = orderedKeys(a.Deployments, a.Order)
	case DeploymentRecordsFetched:
		next.DeploymentRecords = a.Records
	case DeploymentCreated, Autoscaled:
	case DeploymentRemoved:
		next.DeploymentRecords = removeByID(s.DeploymentRecords, a.ID, func(r types.DeploymentRecord) string { return r.ID })

	default:
		return s, stats
	}

	return next, stats
}

// loaded marks kind Loaded and clears the global loading flag
func loaded(s *Snapshot, k Kind) *Snapshot {
	next := s.withStatus(k, KindStatus{Phase: KindLoaded})
	next.IsLoading = false
	return next
}

func restore(cp *Snapshot) *Snapshot {
	next := NewSnapshot()
	if cp == nil {
		return next
	}
	status := next.Status
	*next = *cp
	next.Status = status
	next.IsLoading = false
	next.Err = nil

	// Normalize nil collections from older checkpoints
	empty := NewSnapshot()
	if next.Nodes == nil {
		next.Nodes = empty.Nodes
	}
	if next.NodesNICs == nil {
		next.NodesNICs = empty.NodesNICs
	}
	if next.Pods == nil {
		next.Pods = empty.Pods
	}
	if next.PodsNICs == nil {
		next.PodsNICs = empty.PodsNICs
	}
	if next.Containers == nil {
		next.Containers = empty.Containers
	}
	if next.Deployments == nil {
		next.Deployments = empty.Deployments
	}
	next.AllNodes = orderedKeys(next.Nodes, next.AllNodes)
	next.AllPods = orderedKeys(next.Pods, next.AllPods)
	next.AllContainers = orderedKeys(next.Containers, next.AllContainers)
	next.AllDeployments = orderedKeys(next.Deployments, next.AllDeployments)
	return next
}

// physicalNodes copies the node records with their virtual interfaces removed
func physicalNodes(nodes types.Nodes) types.Nodes {
	out := make(types.Nodes, len(nodes))
	for name, node := range nodes {
		if node == nil {
			continue
		}
		n := *node
		n.NICs, _ = telemetry.PhysicalOnly(node.NICs)
		out[name] = &n
	}
	return out
}

// copyNodesNICs copies the outer map and deep-copies the entry of node, the
// only entry a single-node merge may touch.
func copyNodesNICs(m types.NodesNICs, node string) types.NodesNICs {
	out := make(types.NodesNICs, len(m)+1)
	for name, nics := range m {
		out[name] = nics
	}
	if nics, ok := m[node]; ok {
		out[node] = nics.Clone()
	}
	return out
}

// joinPodRecords attaches the secondary store record of each pod by name
func joinPodRecords(pods types.Pods, records []types.PodRecord) types.Pods {
	out := make(types.Pods, len(pods))
	for name, pod := range pods {
		if pod == nil {
			continue
		}
		out[name] = withPodMetadata(pod, records)
	}
	return out
}

func withPodMetadata(pod *types.Pod, records []types.PodRecord) *types.Pod {
	p := *pod
	p.Metadata = nil
	for i := range records {
		if records[i].Name == pod.PodName {
			r := records[i]
			p.Metadata = &r
			break
		}
	}
	return &p
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, 0, len(in)+1)
	out = append(out, in...)
	return append(out, v)
}

func removeByID[T any](in []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
