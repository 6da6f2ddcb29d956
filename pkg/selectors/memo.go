package selectors

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
)

// inputs identifies the collections a pod view is derived from. Snapshots
// are never mutated in place, so equal identities mean equal contents.
type inputs struct {
	pods       unsafe.Pointer
	order      *string
	orderLen   int
	namespaces *types.Namespace
	nsLen      int
}

func inputsOf(snap *state.Snapshot) inputs {
	return inputs{
		pods:       reflect.ValueOf(snap.Pods).UnsafePointer(),
		order:      unsafe.SliceData(snap.AllPods),
		orderLen:   len(snap.AllPods),
		namespaces: unsafe.SliceData(snap.Namespaces),
		nsLen:      len(snap.Namespaces),
	}
}

// PodSelector memoizes VisiblePods and VisiblePodNames. It returns the same
// map and slice as long as the pods, their order and the namespaces of the
// snapshot are unchanged.
type PodSelector struct {
	mu    sync.Mutex
	valid bool
	key   inputs
	pods  types.Pods
	names []string
}

// NewPodSelector creates an empty selector
func NewPodSelector() *PodSelector {
	return &PodSelector{}
}

// Select returns the visible pods and their names. Callers must not mutate
// the results.
func (s *PodSelector) Select(snap *state.Snapshot) (types.Pods, []string) {
	key := inputsOf(snap)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && s.key == key {
		return s.pods, s.names
	}
	s.pods = VisiblePods(snap)
	s.names = PodNames(s.pods, snap.AllPods)
	s.key = key
	s.valid = true
	return s.pods, s.names
}
