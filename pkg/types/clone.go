package types

// Clone returns a deep copy of the NIC, including its telemetry series
func (n *NIC) Clone() *NIC {
	if n == nil {
		return nil
	}
	out := *n
	out.Traffic = n.Traffic.Clone()
	return &out
}

// Clone returns a deep copy of the traffic counters
func (t NICTraffic) Clone() NICTraffic {
	return NICTraffic{
		ReceiveBytesTotal:    cloneSamples(t.ReceiveBytesTotal),
		TransmitBytesTotal:   cloneSamples(t.TransmitBytesTotal),
		ReceivePacketsTotal:  cloneSamples(t.ReceivePacketsTotal),
		TransmitPacketsTotal: cloneSamples(t.TransmitPacketsTotal),
	}
}

// Clone returns a deep copy of the interface map
func (m NICs) Clone() NICs {
	if m == nil {
		return nil
	}
	out := make(NICs, len(m))
	for name, nic := range m {
		out[name] = nic.Clone()
	}
	return out
}

// Clone returns a deep copy of the per-node interface map
func (m NodesNICs) Clone() NodesNICs {
	out := make(NodesNICs, len(m))
	for node, nics := range m {
		out[node] = nics.Clone()
	}
	return out
}

func cloneSamples(in []Sample) []Sample {
	if in == nil {
		return nil
	}
	out := make([]Sample, len(in))
	copy(out, in)
	return out
}
