package telemetry

import "github.com/cuemby/clusterview/pkg/types"

// MergeStats summarizes the effect of a merge
type MergeStats struct {
	Inserted int // interfaces tracked for the first time
	Updated  int // tracked interfaces that received samples
	Dropped  int // virtual interfaces discarded
	Appended int // samples appended across all counters
	Evicted  int // samples evicted across all counters
}

// Add accumulates other into s
func (s *MergeStats) Add(other MergeStats) {
	s.Inserted += other.Inserted
	s.Updated += other.Updated
	s.Dropped += other.Dropped
	s.Appended += other.Appended
	s.Evicted += other.Evicted
}

// PhysicalOnly returns the physical interfaces of nics and the number of
// virtual interfaces it left out. The input map is not modified.
func PhysicalOnly(nics types.NICs) (types.NICs, int) {
	out := make(types.NICs, len(nics))
	dropped := 0
	for name, nic := range nics {
		if nic == nil || nic.Type != types.NICTypePhysical {
			dropped++
			continue
		}
		out[name] = nic
	}
	return out, dropped
}

// Merge folds the interfaces fetched for node into tracked, which it mutates.
func Merge(tracked types.NodesNICs, node string, incoming types.NICs) MergeStats {
	var stats MergeStats

	physical, dropped := PhysicalOnly(incoming)
	stats.Dropped = dropped
	if len(physical) == 0 {
		return stats
	}

	current, ok := tracked[node]
	if !ok {
		current = make(types.NICs, len(physical))
		tracked[node] = current
	}

	for name, nic := range physical {
		existing, ok := current[name]
		if !ok {
			// First sight: track the record as received, uncapped
			current[name] = nic.Clone()
			stats.Inserted++
			continue
		}

		touched := false
		for _, c := range Counters {
			dst := Series(&existing.Traffic, c)
			out, appended, evicted := Append(*dst, *Series(&nic.Traffic, c))
			*dst = out
			stats.Appended += appended
			stats.Evicted += evicted
			if appended > 0 {
				touched = true
			}
		}
		if touched {
			stats.Updated++
		}
	}
	return stats
}

// MergeAll merges the interfaces of every node in nodes into tracked
func MergeAll(tracked types.NodesNICs, nodes types.Nodes) MergeStats {
	var stats MergeStats
	for name, node := range nodes {
		if node == nil {
			continue
		}
		stats.Add(Merge(tracked, name, node.NICs))
	}
	return stats
}
