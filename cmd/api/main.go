package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fittrack/api/internal/cache"
	"fittrack/api/internal/config"
	"fittrack/api/internal/database"
	"fittrack/api/internal/handlers"
	"fittrack/api/internal/jobs"
	"fittrack/api/internal/log"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/security"
	"fittrack/api/internal/server"
	"fittrack/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
	} else {
		logger.Info().Msg("redis disabled; login throttling off")
	}

	seeder := service.NewAdminSeeder(store.Users, security.NewPasswordHasher(security.DefaultArgon2Params), cfg.Admin, logger)
	if err := seeder.Ensure(ctx); err != nil {
		logger.Fatal().Err(err).Msg("admin seeding failed")
	}

	handlerSet := handlers.NewHandlerSet(logger, store, redisClient, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(store, handlerSet.Metrics(), logger)
		if err := scheduler.Start(cfg.Jobs.CatalogSchedule); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.Jobs.CatalogSchedule).Msg("failed to start scheduler")
		}
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, store.Backend, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, backend repository.Backend, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := backend.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Str("driver", backend.Name()).Msg("database close error")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
