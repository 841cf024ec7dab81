package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/observability"
	"github.com/govhub/helpdesk-portal/internal/persistence"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/worker"
)

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, logger, nil
}

// sessionBackend is the selected session store. expired is set only for
// stores that need periodic cleanup.
type sessionBackend struct {
	store   session.Store
	expired worker.ExpiredSessionDeleter
	close   func()
}

func openSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sessionBackend, error) {
	codec, err := session.NewCodec(cfg.Session.Key())
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}

	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		pg, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store := session.NewPostgresStore(pg.PoolHandle(), codec)
		return &sessionBackend{store: store, expired: store, close: pg.Close}, nil
	case config.SessionStoreMemory:
		logger.Warn("using in-memory session store; sessions are lost on restart")
		return &sessionBackend{store: session.NewMemoryStore(codec), close: func() {}}, nil
	default:
		rdb := persistence.NewRedis(cfg.Redis, logger)
		return &sessionBackend{store: session.NewRedisStore(rdb.Client, codec), close: rdb.Close}, nil
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*persistence.Postgres, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	return pg, nil
}
