package telemetry

import "github.com/cuemby/clusterview/pkg/types"

// MaxSamples is the number of samples retained per counter
const MaxSamples = 15

// Counter identifies one of the four NIC traffic counters
type Counter string

const (
	ReceiveBytes    Counter = "receiveBytesTotal"
	TransmitBytes   Counter = "transmitBytesTotal"
	ReceivePackets  Counter = "receivePacketsTotal"
	TransmitPackets Counter = "transmitPacketsTotal"
)

// Counters lists every counter in a stable order
var Counters = []Counter{ReceiveBytes, TransmitBytes, ReceivePackets, TransmitPackets}

// Series returns a pointer to the series of the given counter
func Series(t *types.NICTraffic, c Counter) *[]types.Sample {
	switch c {
	case ReceiveBytes:
		return &t.ReceiveBytesTotal
	case TransmitBytes:
		return &t.TransmitBytesTotal
	case ReceivePackets:
		return &t.ReceivePacketsTotal
	case TransmitPackets:
		return &t.TransmitPacketsTotal
	}
	return nil
}

// Append adds every incoming sample whose timestamp is strictly greater than the
// current tail of the series, in arrival order, and then evicts the oldest
// samples until at most MaxSamples remain. A series that receives no new sample
// is returned unchanged.
func Append(series, incoming []types.Sample) (out []types.Sample, appended, evicted int) {
	out = series
	for _, s := range incoming {
		if n := len(out); n > 0 && s.Timestamp <= out[n-1].Timestamp {
			continue
		}
		out = append(out, s)
		appended++
	}
	if appended == 0 {
		return series, 0, 0
	}

	if over := len(out) - MaxSamples; over > 0 {
		// Copy so the evicted prefix does not pin the old backing array
		out = append([]types.Sample(nil), out[over:]...)
		evicted = over
	}
	return out, appended, evicted
}

// Last returns the most recent sample of a series
func Last(series []types.Sample) (types.Sample, bool) {
	if len(series) == 0 {
		return types.Sample{}, false
	}
	return series[len(series)-1], true
}
