// Command seed force-recreates the demo accounts and their tasks. Unlike the
// startup bootstrap, it replaces any existing demo tasks.
package main

import (
	"context"

	"github.com/taskhub/task-system/internal/core/service"
	"github.com/taskhub/task-system/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-system/internal/infrastructure/db/mongo"
	"github.com/taskhub/task-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()
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

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	if err := mongodb.EnsureIndexes(ctx, userRepo, taskRepo); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	bootstrapper := service.NewBootstrapper(userRepo, taskRepo, log)
	if err := bootstrapper.Reseed(ctx, service.SeedCredentials{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		UserEmail:     cfg.Seed.UserEmail,
		UserPassword:  cfg.Seed.UserPassword,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().
		Str("admin", cfg.Seed.AdminEmail).
		Str("user", cfg.Seed.UserEmail).
		Msg("seed complete")
}
