package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"

	"github.com/donut/jw-webhooks/internal/client/jw"
	"github.com/donut/jw-webhooks/internal/config"
	"github.com/donut/jw-webhooks/internal/migrations"
	pgmigrations "github.com/donut/jw-webhooks/internal/migrations/postgres"
	"github.com/donut/jw-webhooks/internal/service/registration"
	"github.com/donut/jw-webhooks/internal/storage"
)

// deps wires the pieces every subcommand needs: config, the hook store
// and a registration manager talking to the platform.
type deps struct {
	cfg       config.Config
	hooks     storage.HookStore
	client    *jw.Client
	registrar *registration.Manager
	close     func()
}

func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	hooks, closeStore, err := openHookStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := jw.New(cfg.JW.APISecret)

	registrar, err := registration.NewManager(client.Webhooks, hooks, registration.Config{
		ReceiveURL:  cfg.ReceiveURL(),
		SiteID:      cfg.JW.SiteID,
		WebhookName: cfg.JW.WebhookName,
	})
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to initialize registration manager: %w", err)
	}

	return &deps{
		cfg:       cfg,
		hooks:     hooks,
		client:    client,
		registrar: registrar,
		close:     closeStore,
	}, nil
}

func openHookStore(ctx context.Context, cfg config.Config) (storage.HookStore, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := pgmigrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		return storage.NewPostgresHookStore(pool), pool.Close, nil

	case "sqlite":
		db, err := sql.Open("sqlite3", cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.Apply(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		return storage.NewSQLiteHookStore(db), func() { _ = db.Close() }, nil

	case "memory":
		return storage.NewMemoryHookStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
