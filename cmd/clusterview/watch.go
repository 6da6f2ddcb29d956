package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cuemby/clusterview/pkg/api"
	"github.com/cuemby/clusterview/pkg/dispatch"
	"github.com/cuemby/clusterview/pkg/events"
	"github.com/cuemby/clusterview/pkg/health"
	"github.com/cuemby/clusterview/pkg/log"
	"github.com/cuemby/clusterview/pkg/metrics"
	"github.com/cuemby/clusterview/pkg/poller"
	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the cluster and serve the live snapshot",
	Long: `Mount the configured views, poll the orchestrator API for each of them and
serve the resulting snapshot on the status server.

The snapshot is checkpointed to the data directory and restored on the next
start, so the status server has data before the first poll completes.

Views: pods, nodes, containers, deployments, services, namespaces, configmaps`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("listen", "127.0.0.1:9090", "Status server address")
	watchCmd.Flags().String("data-dir", "./clusterview-data", "Checkpoint directory")
	watchCmd.Flags().Int("interval-ms", poller.DefaultIntervalMs, "Poll interval in milliseconds")
	watchCmd.Flags().StringSlice("views", []string{"pods", "nodes"}, "Views to mount")
	watchCmd.Flags().Duration("checkpoint-interval", 30*time.Second, "Checkpoint interval")
	watchCmd.Flags().Bool("no-checkpoint", false, "Disable checkpoint restore and save")
	watchCmd.Flags().String("probe", "http", "Backend probe (http, tcp, none)")
	watchCmd.Flags().Duration("probe-interval", 15*time.Second, "Backend probe interval")
}

// viewFetchers maps a view name to the fetches it polls
func viewFetchers(d *dispatch.Dispatcher) map[string]poller.FetchFunc {
	return map[string]poller.FetchFunc{
		// The pods view filters by namespace and joins pod records
		"pods":        sequence(d.FetchNamespaces, d.FetchPodRecords, d.FetchPods),
		"nodes":       d.FetchNodes,
		"containers":  d.FetchContainers,
		"deployments": sequence(d.FetchDeploymentRecords, d.FetchDeployments),
		"services":    d.FetchServices,
		"namespaces":  d.FetchNamespaces,
		"configmaps":  d.FetchConfigmaps,
	}
}

// sequence runs every fetch in order and joins their errors
func sequence(fetches ...poller.FetchFunc) poller.FetchFunc {
	return func(ctx context.Context) error {
		var errs []error
		for _, fetch := range fetches {
			if err := fetch(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	checkpointInterval, _ := cmd.Flags().GetDuration("checkpoint-interval")
	noCheckpoint, _ := cmd.Flags().GetBool("no-checkpoint")
	probeType, _ := cmd.Flags().GetString("probe")
	probeInterval, _ := cmd.Flags().GetDuration("probe-interval")
	logger := log.WithComponent("watch")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	a, err := newApp(cfg, state.WithBroker(broker))
	if err != nil {
		return err
	}

	fetchers := viewFetchers(a.dispatcher)
	for _, name := range cfg.Views {
		if _, ok := fetchers[strings.TrimSpace(name)]; !ok {
			return fmt.Errorf("unknown view: %s", name)
		}
	}

	var prober *health.Prober
	if probeType != "none" {
		prober, err = health.New(probeType, cfg.APIURL, cfg.Token, health.Config{
			Interval: probeInterval,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return err
		}
	}

	metrics.SetVersion(Version)
	metrics.RegisterComponent("backend", false, "no response yet")

	var checkpointer *storage.Checkpointer
	if !noCheckpoint {
		db, err := storage.NewBoltStore(cfg.DataDir)
		if err != nil {
			return err
		}
		defer db.Close()

		restored, err := storage.Restore(db, a.store)
		if err != nil {
			logger.Warn().Err(err).Msg("Ignoring unreadable checkpoint")
		} else if restored {
			savedAt, _ := db.SavedAt()
			logger.Info().Time("saved_at", savedAt).Msg("Restored checkpoint")
		}
		checkpointer = storage.NewCheckpointer(db, a.store, checkpointInterval, broker)
	} else {
		log.Warn("Checkpointing disabled, the status server starts empty")
	}
	metrics.RegisterComponent("store", true, "ready")

	g, gctx := errgroup.WithContext(ctx)

	server := api.NewServer(a.store, Version)
	g.Go(func() error {
		return server.Run(gctx, cfg.Listen)
	})

	if checkpointer != nil {
		g.Go(func() error {
			return checkpointer.Run(gctx)
		})
	}

	if prober != nil {
		g.Go(func() error {
			return prober.Run(gctx)
		})
	}

	collector := metrics.NewCollector(a.store, 0)
	collector.Start()
	g.Go(func() error {
		<-gctx.Done()
		collector.Stop()
		return nil
	})

	sub := broker.Subscribe()
	g.Go(func() error {
		defer broker.Unsubscribe(sub)
		return logEvents(gctx, sub)
	})

	ctrl := poller.NewController(cfg.Poller(), poller.WithBroker(broker))
	for _, name := range cfg.Views {
		name = strings.TrimSpace(name)
		if _, err := ctrl.Mount(gctx, name, fetchers[name]); err != nil {
			stop()
			_ = g.Wait()
			return err
		}
	}
	g.Go(func() error {
		<-gctx.Done()
		ctrl.Stop()
		return nil
	})

	logger.Info().
		Str("api_url", cfg.APIURL).
		Str("listen", cfg.Listen).
		Strs("views", ctrl.Mounted()).
		Dur("interval", cfg.Poller().Interval()).
		Msg("Watching cluster")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if n := broker.Dropped(); n > 0 {
		logger.Warn().Uint64("dropped", n).Msg("Events dropped while the queue was full")
	}
	log.Info("Shutdown complete")
	return nil
}

// logEvents logs store and view events at debug level until ctx is done
func logEvents(ctx context.Context, sub events.Subscriber) error {
	logger := log.WithComponent("events")
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-sub:
			if !ok {
				return nil
			}
			logger.Debug().
				Str("type", string(e.Type)).
				Interface("metadata", e.Metadata).
				Str("message", e.Message).
				Msg("Event")
		}
	}
}
