package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete KIND ID",
	Short: "Delete a cluster object",
	Long: `Delete an object by the identifier the backend assigned to it.

Kinds: pod, deployment, service, namespace, configmap

Pods can also be deleted by name with --namespace.

Examples:
  clusterview delete service 3f2a
  clusterview delete pod web-0 --namespace default`,
	Args: cobra.ExactArgs(2),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringP("namespace", "n", "", "Delete a pod by name in this namespace")
}

func runDelete(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(args[0])
	id := args[1]
	namespace, _ := cmd.Flags().GetString("namespace")

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	d := a.dispatcher

	switch kind {
	case "pod", "pods":
		if namespace != "" {
			err = d.RemovePodByName(ctx, namespace, id)
		} else {
			err = d.RemovePod(ctx, id)
		}
	case "deployment", "deployments":
		err = d.RemoveDeployment(ctx, id)
	case "service", "services":
		err = d.RemoveService(ctx, id)
	case "namespace", "namespaces", "ns":
		err = d.RemoveNamespace(ctx, id)
	case "configmap", "configmaps", "cm":
		err = d.RemoveConfigmap(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s deleted\n", kind, id)
	return nil
}
