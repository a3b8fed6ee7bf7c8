package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vnode/internal/inspect"
)

func serveCmd() *cobra.Command {
	var (
		flags replayFlags
		port  int
		host  string
	)

	cmd := &cobra.Command{
		Use:   "serve <scene>",
		Short: "Replay a scene and serve the results",
		Long: `Serve replays a scene, then starts the inspector server:

  GET /                     Step index
  GET /steps                Step summaries as JSON
  GET /steps/{n}            HTML after step n
  GET /steps/{n}/mutations  Mutation log of step n
  GET /metrics              Renderer metrics
  GET /ws                   Binary frame stream of every step`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Serve.Host = host
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, results, reg, err := runScene(ctx, args[0], cfg, flags, logger)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr: cfg.ServeAddress(),
				Handler: inspect.New(results, inspect.Options{
					Scene:    s.Name,
					Logger:   logger,
					Gatherer: reg,
				}).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				<-sigCh
				fmt.Println("\n\n  Shutting down...")
				shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Warn("shutdown", "error", err)
				}
			}()

			printBanner()
			success("Replayed %d steps of %s", len(results), s.Name)
			info("Inspector: http://%s", cfg.ServeAddress())
			fmt.Println()

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "P", 0, "Server port (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Server host (default from config)")

	return cmd
}
