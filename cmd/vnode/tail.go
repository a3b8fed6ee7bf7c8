package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vnode/internal/inspect"
)

func tailCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "tail [ws-url | frames-file]",
		Short: "Print the steps of a frame stream",
		Long: `Tail reads a replay's frame stream and prints each step like replay
does. The source is a running inspector's websocket (default: the
configured serve address) or a file written by replay --frames.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			newLogger(cfg)

			src := "ws://" + cfg.ServeAddress() + "/ws"
			if len(args) == 1 {
				src = args[0]
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			failed := 0
			show := func(s *inspect.Step) error {
				if s.Failed() {
					failed++
					errorMsg("%s: %s: %s", s.Name, s.Code, s.Message)
				} else {
					success("%s: %d mutations", s.Name, len(s.Mutations))
				}
				if quiet {
					return nil
				}
				for _, m := range s.Mutations {
					info("%s", m)
				}
				info("html: %s", s.HTML)
				fmt.Println()
				return nil
			}

			if strings.HasPrefix(src, "ws://") || strings.HasPrefix(src, "wss://") {
				err = inspect.Stream(ctx, src, show)
			} else {
				err = tailFile(src, show)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d steps failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the step summary")

	return cmd
}

func tailFile(path string, fn func(*inspect.Step) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return inspect.ReadSteps(f, fn)
}
