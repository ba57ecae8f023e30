package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/app"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/cache"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/config"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/db"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/logger"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/seed"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.IsProduction)

	appCfg := app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		CacheTTL:     cfg.CacheTTL,
	}

	// Storage
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to db")
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare db schema")
		}
		appCfg.DBPool = pool
	case config.StorageMemory:
		if cfg.SeedFile == "" {
			log.Warn().Msg("no SEED_FILE given, starting with an empty inventory")
			break
		}
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("failed to load seed file")
		}
		appCfg.Seed = f
		log.Info().Int("facilities", len(f.Facilities)).Msg("inventory seeded")
	}

	// Room cache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		defer func(c *redis.Client) {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis client")
			}
		}(client)
		appCfg.Cache = cache.NewRedisCache(client)
	}

	container := app.NewContainer(appCfg)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.StorageDriver).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
