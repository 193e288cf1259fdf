package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/karm/internal/answer"
	"github.com/five82/karm/internal/config"
	"github.com/five82/karm/internal/server"
	"github.com/five82/karm/internal/state"
	"github.com/five82/karm/internal/ui"
)

// Options configure the Karm application.
type Options struct {
	ConfigPath string
	Overrides  config.Overrides
	Logger     *slog.Logger // used by Ask and Serve; Run logs to the configured file
	Debug      bool
}

// LoadConfig resolves the configuration the same way for every command.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithOverrides(opts.Overrides)
	if err != nil {
		return config.Config{}, fmt.Errorf("apply flags: %w", err)
	}
	return cfg, nil
}

func newClient(cfg config.Config) (*answer.Client, error) {
	client, err := answer.NewClient(answer.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init answer client: %w", err)
	}
	return client, nil
}

func newStore(cfg config.Config, client answer.Asker, logger *slog.Logger) (*state.Store, error) {
	mode, err := state.ParseMode(cfg.Theme)
	if err != nil {
		return nil, err
	}
	return state.NewStore(client, state.Options{Mode: mode, Logger: logger}), nil
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Run boots the Karm TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := OpenLogFile(cfg.LogFile, level(opts.Debug))
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	store, err := newStore(cfg, client, logger)
	if err != nil {
		return err
	}
	logger.Info("karm starting", "base_url", client.BaseURL(), "theme", cfg.Theme)

	if cfg.PollInterval > 0 {
		StartPoller(ctx, store, client, cfg.PollInterval, logger)
	}

	return ui.Run(ui.Options{
		Context: ctx,
		Store:   store,
		BaseURL: client.BaseURL(),
		Logger:  logger,
	})
}

// Ask submits a single question without the TUI and returns the final
// screen state. The error is non-nil only when no exchange took place.
func Ask(ctx context.Context, opts Options, question string) (state.Snapshot, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return state.Snapshot{}, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return state.Snapshot{}, err
	}
	store, err := newStore(cfg, client, opts.Logger)
	if err != nil {
		return state.Snapshot{}, err
	}
	return submitOnce(ctx, store, question)
}

func submitOnce(ctx context.Context, store *state.Store, question string) (state.Snapshot, error) {
	store.SetQuestion(question)
	if err := store.Controller().Submit(ctx); err != nil {
		return store.Snapshot(), err
	}
	return store.Snapshot(), nil
}

// Serve runs the bundled answering service until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	kb, err := server.LoadKnowledgeBase(cfg.Server.AnswersFile)
	if err != nil {
		return err
	}
	logger.Info("knowledge base loaded", "entries", kb.Len(), "file", cfg.Server.AnswersFile)

	srv, err := server.New(cfg.Server.Addr, kb, logger)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
