package main

import (
	"fmt"

	"github.com/cuemby/clusterview/pkg/types"
	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:   "scale NAME",
	Short: "Change the replica count of a deployment",
	Args:  cobra.ExactArgs(1),
	RunE:  runScale,
}

func init() {
	scaleCmd.Flags().IntP("replicas", "r", 0, "Desired replica count (required)")
	scaleCmd.Flags().StringP("namespace", "n", "default", "Deployment namespace")
	_ = scaleCmd.MarkFlagRequired("replicas")
}

func runScale(cmd *cobra.Command, args []string) error {
	replicas, _ := cmd.Flags().GetInt("replicas")
	namespace, _ := cmd.Flags().GetString("namespace")
	if replicas < 0 {
		return fmt.Errorf("replicas must not be negative")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	req := &types.AutoscaleRequest{
		Namespace: namespace,
		Name:      args[0],
		Replicas:  replicas,
	}
	if err := a.dispatcher.Autoscale(cmd.Context(), req); err != nil {
		return fmt.Errorf("failed to scale %s/%s: %w", namespace, args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s/%s scaled to %d replicas\n", namespace, args[0], replicas)
	return nil
}
