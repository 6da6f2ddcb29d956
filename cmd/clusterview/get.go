package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cuemby/clusterview/pkg/selectors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var getCmd = &cobra.Command{
	Use:   "get KIND",
	Short: "Fetch and print one kind of cluster object",
	Long: `Fetch one kind of object from the orchestrator API and print it.

Kinds: nodes, pods, containers, deployments, services, namespaces, configmaps

Pods are limited to the namespaces known to the backend and can be filtered
by a substring of the pod, container, node or namespace name.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"nodes", "pods", "containers", "deployments", "services", "namespaces", "configmaps"},
	RunE:      runGet,
}

func init() {
	getCmd.Flags().StringP("output", "o", "table", "Output format (table, json, yaml)")
	getCmd.Flags().String("filter", "", "Only show pods matching this text")
	getCmd.Flags().String("field", "pod", "Pod field the filter applies to (pod, container, node, namespace)")
	getCmd.Flags().Bool("nics", false, "Also fetch and print node interfaces")
}

func runGet(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(args[0])
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	d := a.dispatcher
	out := cmd.OutOrStdout()
	now := time.Now()

	switch kind {
	case "nodes", "node":
		if err := d.FetchNodes(ctx); err != nil {
			return err
		}
		withNICs, _ := cmd.Flags().GetBool("nics")
		if withNICs {
			for _, name := range a.store.Snapshot().AllNodes {
				if err := d.FetchNodeNICs(ctx, name); err != nil {
					return err
				}
			}
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Nodes)
		}
		if err := renderNodes(out, snap.AllNodes, snap.Nodes, now); err != nil {
			return err
		}
		if withNICs {
			fmt.Fprintln(out)
			return renderNICs(out, snap.AllNodes, snap.NodesNICs)
		}
		return nil

	case "pods", "pod":
		if err := d.FetchNamespaces(ctx); err != nil {
			return err
		}
		if err := d.FetchPodRecords(ctx); err != nil {
			return err
		}
		if err := d.FetchPods(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		pods := selectors.VisiblePods(snap)
		names := selectors.PodNames(pods, snap.AllPods)
		filter, _ := cmd.Flags().GetString("filter")
		field, _ := cmd.Flags().GetString("field")
		names = selectors.FilterPodNames(pods, names, selectors.ParsePodField(field), filter)
		if output != "table" {
			matched := make(map[string]any, len(names))
			for _, name := range names {
				matched[name] = pods[name]
			}
			return encode(out, output, matched)
		}
		return renderPods(out, names, pods, now)

	case "containers", "container":
		if err := d.FetchContainers(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Containers)
		}
		return renderContainers(out, snap.AllContainers, snap.Containers)

	case "deployments", "deployment":
		if err := d.FetchDeployments(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Deployments)
		}
		return renderDeployments(out, snap.AllDeployments, snap.Deployments, now)

	case "services", "service":
		if err := d.FetchServices(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Services)
		}
		return renderServices(out, snap.Services, now)

	case "namespaces", "namespace", "ns":
		if err := d.FetchNamespaces(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Namespaces)
		}
		return renderNamespaces(out, snap.Namespaces, now)

	case "configmaps", "configmap", "cm":
		if err := d.FetchConfigmaps(ctx); err != nil {
			return err
		}
		snap := a.store.Snapshot()
		if output != "table" {
			return encode(out, output, snap.Configmaps)
		}
		return renderConfigmaps(out, snap.Configmaps, now)
	}

	return fmt.Errorf("unknown kind %q", args[0])
}

func encode(out io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
