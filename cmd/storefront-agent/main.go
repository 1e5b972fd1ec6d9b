package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kartify/storefront-agent/internal/api"
	"github.com/kartify/storefront-agent/internal/core/ports"
	"github.com/kartify/storefront-agent/internal/core/service"
	"github.com/kartify/storefront-agent/internal/infrastructure/backend"
	redisdb "github.com/kartify/storefront-agent/internal/infrastructure/db/redis"
	"github.com/kartify/storefront-agent/internal/infrastructure/storage"
	"github.com/kartify/storefront-agent/internal/pkg/config"
	"github.com/kartify/storefront-agent/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.URL).
		Str("storage", cfg.Storage.Backend).
		Msg("storefront agent starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var store ports.Storage
	switch cfg.Storage.Backend {
	case "redis":
		client, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		store = storage.NewRedisStore(client)
	default:
		fs, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("file storage init failed")
		}
		store = fs
	}

	client := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, log)

	sessions := service.NewSessionStore(store, log)
	cart := service.NewCartStore(store, log)

	// Restore whatever survived the last run before taking traffic.
	sessions.Load(ctx)
	cart.Load(ctx)

	guard := service.NewGuard(sessions, client, log)

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Cart:     cart,
		Guard:    guard,
		Auth:     client,
		Catalog:  client,
		Checkout: client,
		Storage:  store,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("graceful shutdown complete")
}
