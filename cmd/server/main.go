package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/donut/jw-webhooks/internal/client/jw"
	"github.com/donut/jw-webhooks/internal/config"
	"github.com/donut/jw-webhooks/internal/migrations"
	pgmigrations "github.com/donut/jw-webhooks/internal/migrations/postgres"
	"github.com/donut/jw-webhooks/internal/notify"
	xredis "github.com/donut/jw-webhooks/internal/redis"
	"github.com/donut/jw-webhooks/internal/server/handler"
	"github.com/donut/jw-webhooks/internal/service/registration"
	"github.com/donut/jw-webhooks/internal/service/webhook"
	"github.com/donut/jw-webhooks/internal/storage"
	"github.com/donut/jw-webhooks/internal/xhttp/middleware"
	"github.com/donut/jw-webhooks/internal/xslog"
)

const (
	keyPort   = "port"
	keyDriver = "driver"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	hooks, closeStore, err := initHookStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize hook store: %w", err)
	}
	defer closeStore()

	notifier, err := initNotifier(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	jwClient := jw.New(cfg.JW.APISecret, jw.WithLogger(logger))

	registrar, err := registration.NewManager(jwClient.Webhooks, hooks, registration.Config{
		ReceiveURL:  cfg.ReceiveURL(),
		SiteID:      cfg.JW.SiteID,
		WebhookName: cfg.JW.WebhookName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize registration manager: %w", err)
	}

	if cfg.JW.SyncOnStart {
		record, err := registrar.Sync(ctx, cfg.JW.Events)
		if err != nil {
			var orphaned *registration.OrphanedRemoteError
			if errors.As(err, &orphaned) {
				logger.ErrorContext(ctx, "remote webhook orphaned, delete it at the platform before restarting",
					xslog.WebhookID(orphaned.WebhookID),
				)
			}
			return fmt.Errorf("failed to sync webhook registration: %w", err)
		}
		if record != nil {
			logger.InfoContext(ctx, "webhook registration synced", xslog.WebhookID(record.ID))
		}
	}

	processor := webhook.NewProcessor(hooks, notifier)

	webhookHandler := handler.NewWebhook(processor, cfg.MaxBodyBytes)
	hooksHandler := handler.NewHooks(hooks, registrar, cfg.JW.Events)

	mux := http.NewServeMux()

	receiveMux := http.NewServeMux()
	receiveMux.HandleFunc("POST "+cfg.ReceivePath, webhookHandler.HandleReceive)
	receiveMux.HandleFunc("GET /health", handler.HandleHealth)
	receiveWrapped := middleware.Chain(receiveMux,
		middleware.RateLimit(cfg.RateLimit.Limit, cfg.RateLimit.Burst),
	)
	mux.Handle(cfg.ReceivePath, receiveWrapped)
	mux.Handle("/health", receiveWrapped)

	if cfg.AdminAPIKey != "" {
		adminMux := http.NewServeMux()
		adminMux.HandleFunc("GET /hooks", hooksHandler.HandleList)
		adminMux.HandleFunc("POST /hooks/sync", hooksHandler.HandleSync)
		adminWrapped := middleware.Chain(adminMux,
			middleware.APIKey(cfg.AdminAPIKey),
		)
		mux.Handle("/hooks", adminWrapped)
		mux.Handle("/hooks/sync", adminWrapped)
	} else {
		logger.WarnContext(ctx, "ADMIN_API_KEY not set, admin routes disabled")
	}

	wrapped := middleware.Chain(mux,
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(logger),
		middleware.RequestID,
		middleware.SecurityHeaders,
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initHookStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.HookStore, func(), error) {
	logger.InfoContext(ctx, "initializing hook store", slog.String(keyDriver, cfg.Database.Driver))

	switch cfg.Database.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
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

func initNotifier(ctx context.Context, cfg config.Config, logger *slog.Logger) (webhook.Notifier, error) {
	if cfg.Redis.URL == "" {
		logger.InfoContext(ctx, "initializing in-process notifier")
		return notify.NewBroadcaster(), nil
	}

	logger.InfoContext(ctx, "initializing redis notifier")
	client, err := xredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	return notify.NewRedisNotifier(client), nil
}
