package selectors

import (
	"sort"
	"strings"

	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
)

// PodField is the pod attribute matched by FilterPodNames
type PodField string

const (
	FieldPod       PodField = "pod"
	FieldContainer PodField = "container"
	FieldNode      PodField = "node"
	FieldNamespace PodField = "namespace"
)

// ParsePodField parses a filter field name. Unknown names fall back to FieldPod.
func ParsePodField(s string) PodField {
	switch PodField(strings.ToLower(strings.TrimSpace(s))) {
	case FieldContainer:
		return FieldContainer
	case FieldNode:
		return FieldNode
	case FieldNamespace:
		return FieldNamespace
	default:
		return FieldPod
	}
}

// PodsInNamespaces returns the pods whose namespace is one of namespaces.
// The result is a new map; the pod records are shared with pods.
func PodsInNamespaces(pods types.Pods, namespaces []types.Namespace) types.Pods {
	visible := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		visible[ns.Name] = true
	}

	out := make(types.Pods)
	for name, pod := range pods {
		if pod != nil && visible[pod.Namespace] {
			out[name] = pod
		}
	}
	return out
}

// PodNames returns the keys of pods following order, then any remaining keys
// sorted. Each name appears once.
func PodNames(pods types.Pods, order []string) []string {
	names := make([]string, 0, len(pods))
	seen := make(map[string]bool, len(pods))
	for _, name := range order {
		if _, ok := pods[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	start := len(names)
	for name := range pods {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names[start:])
	return names
}

// VisiblePods returns the pods in the namespaces known to the snapshot
func VisiblePods(snap *state.Snapshot) types.Pods {
	return PodsInNamespaces(snap.Pods, snap.Namespaces)
}

// VisiblePodNames returns the keys of VisiblePods in backend order
func VisiblePodNames(snap *state.Snapshot) []string {
	return PodNames(VisiblePods(snap), snap.AllPods)
}

// FilterPodNames keeps the names whose pod has field containing text. Matching
// is case-sensitive; an empty text keeps every name.
func FilterPodNames(pods types.Pods, names []string, field PodField, text string) []string {
	if text == "" {
		return names
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		pod, ok := pods[name]
		if !ok || pod == nil {
			continue
		}
		if podMatches(pod, field, text) {
			out = append(out, name)
		}
	}
	return out
}

func podMatches(pod *types.Pod, field PodField, text string) bool {
	switch field {
	case FieldContainer:
		for _, c := range pod.Containers {
			if strings.Contains(c, text) {
				return true
			}
		}
		return false
	case FieldNode:
		return strings.Contains(pod.Node, text)
	case FieldNamespace:
		return strings.Contains(pod.Namespace, text)
	default:
		return strings.Contains(pod.PodName, text)
	}
}
