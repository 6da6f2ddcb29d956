package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cuemby/clusterview/pkg/telemetry"
	"github.com/cuemby/clusterview/pkg/types"
	"k8s.io/apimachinery/pkg/api/resource"
)

func newTable(out io.Writer, headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	return w
}

func row(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

// formatBytes renders a byte count with binary suffixes, e.g. 8Gi
func formatBytes(n int64) string {
	return resource.NewQuantity(n, resource.BinarySI).String()
}

// formatCPU renders a core count, using millicores below one core
func formatCPU(cores float64) string {
	return resource.NewMilliQuantity(int64(cores*1000+0.5), resource.DecimalSI).String()
}

// formatAge renders the time elapsed since a Unix timestamp
func formatAge(unix int64, now time.Time) string {
	if unix <= 0 {
		return "<unknown>"
	}
	d := now.Sub(time.Unix(unix, 0))
	switch {
	case d < 0:
		return "0s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// formatRate renders the per-second rate between the last two samples of a
// counter series
func formatRate(series []types.Sample, binary bool) string {
	if len(series) < 2 {
		return "-"
	}
	last := series[len(series)-1]
	prev := series[len(series)-2]
	elapsed := last.Timestamp - prev.Timestamp
	if elapsed <= 0 || last.Value < prev.Value {
		return "-"
	}
	rate := int64((last.Value - prev.Value) / float64(elapsed))
	if binary {
		return formatBytes(rate) + "/s"
	}
	return resource.NewQuantity(rate, resource.DecimalSI).String() + "/s"
}

func renderNodes(out io.Writer, names []string, nodes types.Nodes, now time.Time) error {
	w := newTable(out, "NAME", "STATUS", "CPU REQ/ALLOC", "MEM REQ/ALLOC", "PODS", "AGE", "VERSION")
	for _, name := range names {
		n, ok := nodes[name]
		if !ok || n == nil {
			continue
		}
		r := n.Resource
		row(w,
			name,
			n.Detail.Status,
			formatCPU(r.CPURequests)+"/"+formatCPU(r.AllocatableCPU),
			formatBytes(r.MemoryRequests)+"/"+formatBytes(r.AllocatableMemory),
			fmt.Sprint(r.AllocatablePods),
			formatAge(n.Detail.CreateAt, now),
			n.Detail.KubernetesVersion,
		)
	}
	return w.Flush()
}

func renderNICs(out io.Writer, names []string, nics types.NodesNICs) error {
	w := newTable(out, "NODE", "INTERFACE", "IP", "DEFAULT", "RX", "TX", "SAMPLES")
	for _, node := range names {
		ifaces := nics[node]
		for _, iface := range sortedKeys(ifaces) {
			nic := ifaces[iface]
			if nic == nil {
				continue
			}
			row(w,
				node,
				iface,
				nic.IP,
				fmt.Sprint(nic.Default),
				formatRate(*telemetry.Series(&nic.Traffic, telemetry.ReceiveBytes), true),
				formatRate(*telemetry.Series(&nic.Traffic, telemetry.TransmitBytes), true),
				fmt.Sprint(len(nic.Traffic.ReceiveBytesTotal)),
			)
		}
	}
	return w.Flush()
}

func renderPods(out io.Writer, names []string, pods types.Pods, now time.Time) error {
	w := newTable(out, "NAME", "NAMESPACE", "STATUS", "RESTARTS", "NODE", "CONTAINERS", "AGE")
	for _, name := range names {
		p, ok := pods[name]
		if !ok || p == nil {
			continue
		}
		row(w,
			name,
			p.Namespace,
			p.Status,
			fmt.Sprint(p.RestartCount),
			p.Node,
			strings.Join(p.Containers, ","),
			formatAge(p.CreateAt, now),
		)
	}
	return w.Flush()
}

func renderContainers(out io.Writer, names []string, containers types.Containers) error {
	w := newTable(out, "NAME", "POD", "NAMESPACE", "IMAGE", "STATUS", "RESTARTS")
	for _, name := range names {
		c, ok := containers[name]
		if !ok || c == nil {
			continue
		}
		d := c.Detail
		row(w, name, d.Pod, d.Namespace, d.Image, d.Status, fmt.Sprint(d.RestartCount))
	}
	return w.Flush()
}

func renderDeployments(out io.Writer, names []string, deployments types.Deployments, now time.Time) error {
	w := newTable(out, "NAME", "NAMESPACE", "TYPE", "READY", "AGE")
	for _, name := range names {
		d, ok := deployments[name]
		if !ok || d == nil {
			continue
		}
		row(w,
			name,
			d.Namespace,
			d.Type,
			fmt.Sprintf("%d/%d", d.AvailableReplicas, d.Replicas),
			formatAge(d.CreateAt, now),
		)
	}
	return w.Flush()
}

func renderServices(out io.Writer, services []types.Service, now time.Time) error {
	w := newTable(out, "ID", "NAME", "NAMESPACE", "TYPE", "CLUSTER-IP", "PORTS", "AGE")
	for _, s := range services {
		ports := make([]string, 0, len(s.Ports))
		for _, p := range s.Ports {
			ports = append(ports, fmt.Sprintf("%d/%s", p.Port, p.Protocol))
		}
		row(w, s.ID, s.Name, s.Namespace, s.Type, s.ClusterIP, strings.Join(ports, ","), formatAge(s.CreatedAt, now))
	}
	return w.Flush()
}

func renderNamespaces(out io.Writer, namespaces []types.Namespace, now time.Time) error {
	w := newTable(out, "ID", "NAME", "AGE")
	for _, ns := range namespaces {
		row(w, ns.ID, ns.Name, formatAge(ns.CreatedAt, now))
	}
	return w.Flush()
}

func renderConfigmaps(out io.Writer, configmaps []types.Configmap, now time.Time) error {
	w := newTable(out, "ID", "NAME", "NAMESPACE", "DATA", "AGE")
	for _, cm := range configmaps {
		row(w, cm.ID, cm.Name, cm.Namespace, fmt.Sprint(len(cm.Data)), formatAge(cm.CreatedAt, now))
	}
	return w.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
