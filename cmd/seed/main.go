// Command seed fills the configured Postgres database with generated users.
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"callerid/internal/auth/password"
	"callerid/internal/identity/seed"
	"callerid/internal/identity/store"
	"callerid/internal/platform/config"
	"callerid/internal/platform/logger"
	"callerid/internal/platform/postgres"
)

func main() {
	count := flag.Int("count", 20, "number of users to create")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("development", "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required; the in-memory store does not outlive this process")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := store.NewPostgres(db)
	if err := users.Migrate(ctx); err != nil {
		log.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
	created, err := seed.Populate(ctx, users, password.NewHasher(0), *count, rng, now)
	if err != nil {
		log.Error("seeding stopped early", "created", len(created), "error", err)
		os.Exit(1)
	}
	log.Info("populated", "users", len(created), "password", seed.DefaultPassword)
}
