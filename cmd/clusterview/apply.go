package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cuemby/clusterview/pkg/manifest"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create resources from a manifest file",
	Long: `Create the resources described in a YAML manifest.

A manifest may hold several documents separated by "---". Namespaces are
created first, then configmaps, services, pods and deployments.

Examples:
  # Apply a single deployment
  clusterview apply -f deployment.yaml

  # Apply from stdin
  cat app.yaml | clusterview apply -f -`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML file to apply, or - for stdin (required)")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	var r io.Reader = cmd.InOrStdin()
	if filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer f.Close()
		r = f
	}

	resources, err := manifest.Decode(r)
	if err != nil {
		return err
	}
	if len(resources) == 0 {
		return fmt.Errorf("no resources found in %s", filename)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	result, applyErr := manifest.Apply(cmd.Context(), a.dispatcher, resources)
	printApplyResult(cmd.OutOrStdout(), result)
	return applyErr
}

func printApplyResult(out io.Writer, result *manifest.Result) {
	if result == nil {
		return
	}
	for _, id := range result.Created {
		fmt.Fprintf(out, "✓ %s created\n", id)
	}

	failed := make([]string, 0, len(result.Failed))
	for id := range result.Failed {
		failed = append(failed, id)
	}
	sort.Strings(failed)
	for _, id := range failed {
		fmt.Fprintf(out, "✗ %s: %v\n", id, result.Failed[id])
	}
}
