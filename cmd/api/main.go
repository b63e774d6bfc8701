package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskhub/task-system/internal/api"
	"github.com/taskhub/task-system/internal/core/service"
	"github.com/taskhub/task-system/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-system/internal/infrastructure/db/redis"
	"github.com/taskhub/task-system/internal/infrastructure/queue"
	"github.com/taskhub/task-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := mongodb.EnsureIndexes(ctx, userRepo, taskRepo); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	dispatcher := queue.NewAuditDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	bootstrapper := service.NewBootstrapper(userRepo, taskRepo, log)
	if err := bootstrapper.EnsureDefaults(ctx, service.SeedCredentials{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		UserEmail:     cfg.Seed.UserEmail,
		UserPassword:  cfg.Seed.UserPassword,
	}); err != nil {
		log.Error().Err(err).Msg("bootstrap seeding failed")
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
