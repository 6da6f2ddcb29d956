package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cuemby/clusterview/pkg/manifest"
	"github.com/cuemby/clusterview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQuantities(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"bytes gibibytes", formatBytes(8 << 30), "8Gi"},
		{"bytes mebibytes", formatBytes(512 << 20), "512Mi"},
		{"bytes zero", formatBytes(0), "0"},
		{"cpu whole cores", formatCPU(4), "4"},
		{"cpu millicores", formatCPU(0.25), "250m"},
		{"cpu fractional", formatCPU(1.5), "1500m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	tests := []struct {
		unix int64
		want string
	}{
		{0, "<unknown>"},
		{1_000_000 - 30, "30s"},
		{1_000_000 - 600, "10m"},
		{1_000_000 - 5*3600, "5h"},
		{1_000_000 - 3*86400, "3d"},
		{1_000_000 + 10, "0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAge(tt.unix, now))
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "-", formatRate(nil, true))
	assert.Equal(t, "-", formatRate([]types.Sample{{Timestamp: 1, Value: 10}}, true))

	series := []types.Sample{
		{Timestamp: 100, Value: 0},
		{Timestamp: 110, Value: 10 * 1024},
	}
	assert.Equal(t, "1Ki/s", formatRate(series, true))
	assert.Equal(t, "1024/s", formatRate(series, false))

	// Counter reset
	reset := []types.Sample{{Timestamp: 100, Value: 50}, {Timestamp: 110, Value: 10}}
	assert.Equal(t, "-", formatRate(reset, true))
}

func TestRenderNodes(t *testing.T) {
	nodes := types.Nodes{
		"node-b": {
			Detail: types.NodeDetail{Hostname: "node-b", Status: "Ready", KubernetesVersion: "v1.31.0"},
			Resource: types.NodeResources{
				CPURequests:       0.5,
				AllocatableCPU:    2,
				MemoryRequests:    1 << 30,
				AllocatableMemory: 4 << 30,
				AllocatablePods:   110,
			},
		},
		"node-a": {Detail: types.NodeDetail{Hostname: "node-a", Status: "NotReady"}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderNodes(&buf, []string{"node-b", "node-a", "gone"}, nodes, time.Now()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "node-b"), "rows follow the given order")
	assert.Contains(t, lines[1], "500m/2")
	assert.Contains(t, lines[1], "1Gi/4Gi")
	assert.True(t, strings.HasPrefix(lines[2], "node-a"))
}

func TestRenderPods(t *testing.T) {
	pods := types.Pods{
		"web-0": {PodName: "web-0", Namespace: "default", Status: "Running", Node: "node-a", Containers: []string{"nginx", "sidecar"}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderPods(&buf, []string{"web-0"}, pods, time.Now()))
	assert.Contains(t, buf.String(), "nginx,sidecar")
	assert.Contains(t, buf.String(), "Running")
}

func TestRenderServices(t *testing.T) {
	services := []types.Service{{
		ID:        "s1",
		Name:      "web",
		Namespace: "default",
		Type:      "ClusterIP",
		Ports:     []types.ServicePort{{Port: 80, Protocol: "TCP"}, {Port: 443, Protocol: "TCP"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, renderServices(&buf, services, time.Now()))
	assert.Contains(t, buf.String(), "80/TCP,443/TCP")
}

func TestEncode(t *testing.T) {
	v := []types.Namespace{{ID: "n1", Name: "default"}}

	var js bytes.Buffer
	require.NoError(t, encode(&js, "json", v))
	assert.Contains(t, js.String(), `"name": "default"`)

	var ym bytes.Buffer
	require.NoError(t, encode(&ym, "yaml", v))
	assert.Contains(t, ym.String(), "name: default")
}

func TestPrintApplyResult(t *testing.T) {
	var buf bytes.Buffer
	printApplyResult(&buf, &manifest.Result{
		Created: []string{"Namespace/team"},
		Failed:  map[string]error{"Pod/web": assert.AnError},
	})
	assert.Contains(t, buf.String(), "✓ Namespace/team created")
	assert.Contains(t, buf.String(), "✗ Pod/web")

	buf.Reset()
	printApplyResult(&buf, nil)
	assert.Empty(t, buf.String())
}
