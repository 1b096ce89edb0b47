package main

import (
	"context"
	"fmt"
	"log"

	"github.com/dngan0365/bi-mooccubex-backend/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	var userRepo core.UserRepository
	switch cfg.StorageDriver {
	case "postgres":
		db, err := core.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer db.Close()

		pgRepo := core.NewPgUserRepository(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		userRepo = pgRepo
	case "redis":
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()

		userRepo = core.NewRedisUserRepository(redisClient)
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	if err := core.SeedUsers(ctx, userRepo, cfg.SeedFile); err != nil {
		log.Fatalf("seeding users failed: %v", err)
	}

	tokens := core.NewTokenIssuer(cfg.SecretKey)
	authService := core.NewDirectoryAuthService(userRepo, tokens)

	router := core.NewRouter(cfg, authService)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
