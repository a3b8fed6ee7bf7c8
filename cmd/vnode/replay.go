package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vnode/internal/config"
	"github.com/vango-dev/vnode/internal/inspect"
	"github.com/vango-dev/vnode/internal/replay"
	"github.com/vango-dev/vnode/pkg/render"
	"github.com/vango-dev/vnode/pkg/scene"
	"github.com/vango-dev/vnode/pkg/snapshot"
)

// replayFlags are shared by replay and serve.
type replayFlags struct {
	policy      string
	stopOnError bool
	snapshots   string
}

func (f *replayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.policy, "policy", "p", "", "Key policy when the scene sets none (positional, strict, remount)")
	cmd.Flags().BoolVar(&f.stopOnError, "stop-on-error", false, "Stop at the first failed step")
	cmd.Flags().StringVar(&f.snapshots, "snapshots", "", "Write step snapshots to this directory")
}

func replayCmd() *cobra.Command {
	var (
		flags  replayFlags
		quiet  bool
		frames string
	)

	cmd := &cobra.Command{
		Use:   "replay <scene>",
		Short: "Replay a scene and print each step's mutations",
		Long: `Replay renders every step of a scene in order and prints the host
mutations each step produced, followed by the resulting HTML.

Exits non-zero if any step failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, results, _, err := runScene(ctx, args[0], cfg, flags, logger)
			if err != nil {
				return err
			}
			if frames != "" {
				if err := writeFrames(frames, results); err != nil {
					return err
				}
				logger.Debug("wrote frames", "path", frames)
			}

			failed := 0
			for i := range results {
				res := &results[i]
				if res.Err != nil {
					failed++
					errorMsg("%s: %v", res.Name, res.Err)
				} else {
					success("%s: %d mutations in %s", res.Name, len(res.Mutations), res.Duration)
				}
				if quiet {
					continue
				}
				for _, m := range res.Mutations {
					info("%s", m)
				}
				info("html: %s", res.HTML)
				fmt.Println()
			}

			if len(results) < len(s.Steps) {
				warn("stopped after %d of %d steps", len(results), len(s.Steps))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d steps failed", failed, len(results))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the step summary")
	cmd.Flags().StringVar(&frames, "frames", "", "Write the binary frame stream to this file (read it with tail)")

	return cmd
}

// runScene loads and replays the scene at path. Metrics are recorded on
// a fresh registry, which is returned for serving.
func runScene(ctx context.Context, path string, cfg *config.Config, flags replayFlags, logger *slog.Logger) (*scene.Scene, []replay.Result, *prometheus.Registry, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	policy := cfg.Policy()
	if flags.policy != "" {
		if policy, err = render.ParseKeyPolicy(flags.policy); err != nil {
			return nil, nil, nil, fmt.Errorf("--policy: %w", err)
		}
	}

	stores, err := openStores(cfg, flags.snapshots)
	if err != nil {
		return nil, nil, nil, err
	}

	reg := prometheus.NewRegistry()
	metricOpts := []render.MetricsOption{
		render.WithNamespace(cfg.Metrics.Namespace),
		render.WithRegistry(reg),
	}
	if cfg.Metrics.Subsystem != "" {
		metricOpts = append(metricOpts, render.WithSubsystem(cfg.Metrics.Subsystem))
	}

	runner, err := replay.New(s, replay.Options{
		Policy:      policy,
		StopOnError: flags.stopOnError,
		Logger:      logger,
		Metrics:     render.NewMetrics(metricOpts...),
		Stores:      stores,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("replaying scene", "path", path, "steps", len(s.Steps), "policy", runner.Policy())

	results, err := runner.Run(ctx)
	return s, results, reg, err
}

// writeFrames writes the results as a protocol frame stream to path.
func writeFrames(path string, results []replay.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := inspect.WriteSteps(w, results); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// openStores returns the snapshot stores named by cfg. dir, when set,
// replaces the configured local directory.
func openStores(cfg *config.Config, dir string) ([]snapshot.Store, error) {
	var stores []snapshot.Store

	if dir == "" {
		dir = cfg.Snapshots.Dir
	}
	if dir != "" {
		fs, err := snapshot.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		stores = append(stores, fs)
	}

	if s3cfg := cfg.Snapshots.S3; s3cfg.Bucket != "" {
		client := snapshot.NewS3Client(snapshot.S3Options{
			Region:   s3cfg.Region,
			Endpoint: s3cfg.Endpoint,
		})
		stores = append(stores, snapshot.NewS3Store(client, s3cfg.Bucket, s3cfg.Prefix))
	}
	return stores, nil
}
