package main

import (
	"fmt"
	"os"

	"github.com/cuemby/clusterview/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clusterview",
	Short: "clusterview - cluster state console for the orchestrator API",
	Long: `clusterview keeps a live, in-memory snapshot of an orchestrator's cluster
state (nodes, pods, containers, services, deployments, namespaces and
configmaps) by polling its REST API, and serves it to presentation code.

Node interface telemetry is merged incrementally into a bounded window of
recent samples per counter.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		log.Init(log.Config{
			Level:      log.ParseLevel(cfg.LogLevel),
			JSONOutput: cfg.LogJSON,
			Output:     os.Stderr,
		})
		return nil
	},
}

// cfg is loaded before any command runs
var cfg *Config

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"clusterview version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	addConfigFlags(rootCmd)

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(scaleCmd)
}
