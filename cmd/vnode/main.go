package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vnode/internal/config"
	"github.com/vango-dev/vnode/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌┐┌┌─┐┌┬┐┌─┐
  ╚╗╔╝│││││ │ ││├┤
   ╚╝ ┘└┘└─┘─┴┘└─┘
`

// Persistent flags.
var (
	configDir string
	logLevel  string
	jsonLogs  bool
	colorMode string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vnode",
		Short: "Replay and inspect virtual tree renders",
		Long: `vnode replays scenes through the virtual tree renderer.

A scene is a TOML or JSON file describing a sequence of trees. Each
step is reconciled against the previous one and the resulting host
mutations are printed, snapshotted or served for inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupColor(colorMode, os.Stdout)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "dir", "C", ".", "Directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs and errors as JSON")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output (auto, always, never)")

	rootCmd.AddCommand(
		replayCmd(),
		serveCmd(),
		tailCmd(),
		codesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err, errors.CodeCommandFailed, jsonLogs)
		os.Exit(1)
	}
}

// setupColor applies --color. In auto mode colors are on only when out is
// a terminal.
func setupColor(mode string, out *os.File) error {
	switch mode {
	case "always":
		errors.SetColor(true)
	case "never":
		errors.SetColor(false)
	case "auto", "":
		errors.SetColor(isTerminal(out))
	default:
		return fmt.Errorf("--color: unknown mode %q (auto, always, never)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// paint wraps s in an ANSI code when colors are on.
func paint(code, s string) string {
	if !errors.ColorEnabled() {
		return s
	}
	return code + s + "\033[0m"
}

// loadConfig loads vnode.json from the --dir directory and applies the
// logging flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configDir)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if jsonLogs {
		cfg.Log.JSON = true
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).WithDetail("--log-level: " + err.Error())
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg and installs it as the
// slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", paint("\033[31m", "✗"), fmt.Sprintf(format, args...))
}
