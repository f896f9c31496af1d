package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coinScope/internal/config"
	"coinScope/internal/dashboard"
	"coinScope/internal/detail"
	"coinScope/internal/gecko"
	"coinScope/internal/storage"
	"coinScope/internal/storage/postgres"
	"coinScope/internal/storage/sqlite"
	"coinScope/internal/watchlist"
)

// session is everything one command invocation needs.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	client *gecko.Client
	app    *dashboard.App

	closers []func()
}

// withSession loads config, builds the app and runs fn under a context
// cancelled on SIGINT/SIGTERM.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	return fn(ctx, s)
}

func newSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (*session, error) {
	s := &session{cfg: cfg, logger: logger}

	kv, err := s.openKV(ctx)
	if err != nil {
		return nil, err
	}

	opts := []gecko.ClientOption{gecko.WithLogger(logger)}
	if cfg.APIKey != "" {
		opts = append(opts, gecko.WithAPIKey(cfg.APIKey))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, gecko.WithTimeout(cfg.HTTPTimeout))
	}
	s.client = gecko.NewClient(cfg.APIURL, opts...)

	wl := watchlist.New(kv, logger)
	wl.Load(ctx)

	details := detail.NewCache(s.client,
		detail.WithLogger(logger),
		detail.WithMaxAge(cfg.DetailMaxAge),
		detail.WithStaleGuard(cfg.StaleGuard),
	)

	s.app = dashboard.New(s.client, wl, details, logger)

	logger.Debug("session ready",
		zap.String("api_url", cfg.APIURL),
		zap.String("currency", cfg.Currency),
		zap.String("store", cfg.Store),
		zap.Int("watched", wl.Count()),
		durationField("http_timeout", cfg.HTTPTimeout),
		durationField("detail_max_age", cfg.DetailMaxAge),
		zap.Bool("stale_guard", cfg.StaleGuard),
	)
	return s, nil
}

func (s *session) openKV(ctx context.Context) (storage.KV, error) {
	switch s.cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryKV(), nil
	case config.StoreFile:
		return storage.NewFileKV(s.cfg.StorePath), nil
	case config.StoreSQLite:
		kv, err := sqlite.Open(s.cfg.StorePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { kv.Close() })
		return kv, nil
	case config.StorePostgres:
		store, err := postgres.NewStore(ctx, s.cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", s.cfg.Store)
	}
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
