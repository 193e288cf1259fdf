package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/karm/internal/app"
	"github.com/five82/karm/internal/config"
)

// errSilent signals a non-zero exit whose cause was already printed.
var errSilent = errors.New("silent failure")

type rootFlags struct {
	configPath string
	baseURL    string
	poll       time.Duration
	timeout    time.Duration
	theme      string
	logFile    string
	debug      bool
}

func (f *rootFlags) options(logger *slog.Logger) app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		Overrides: config.Overrides{
			BaseURL:        f.baseURL,
			RequestTimeout: f.timeout,
			PollInterval:   f.poll,
			Theme:          f.theme,
			LogFile:        f.logFile,
		},
		Logger: logger,
		Debug:  f.debug,
	}
}

func (f *rootFlags) level(fallback slog.Level) slog.Level {
	if f.debug {
		return slog.LevelDebug
	}
	return fallback
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "karm: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "karm",
		Short:         "Ask Karm AI questions from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(nil))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/karm/config.toml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "answering service URL (overrides config and KARM_BASE_URL)")
	pf.DurationVar(&flags.poll, "poll", 0, "health check interval, e.g. 5s")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout, e.g. 30s (default none)")
	pf.StringVar(&flags.theme, "theme", "", "initial theme: light or dark")
	pf.StringVar(&flags.logFile, "log-file", "", "log file for the terminal UI")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAskCommand(flags),
		newServeCommand(flags),
		newLogsCommand(flags),
	)
	return root
}
