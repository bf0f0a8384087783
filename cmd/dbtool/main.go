package main

import (
	"context"
	"database/sql"
	"fmt"
	"geodistance-service/internal/adapters/repositories"
	"geodistance-service/internal/config"
	"geodistance-service/internal/platform/db"
	"geodistance-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

func main() {
	foundEnv := config.Load()
	logger := obs.NewLogger(config.Get("LOG_LEVEL", "info"))
	if !foundEnv {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx := logger.WithContext(context.Background())
	seedPath := config.Get("SEED_PATH", "data/seeds/ways.json")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		logger.Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log := zerolog.Ctx(ctx)

	log.Info().Msg("initializing database schema")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("schema ready")

	log.Info().Str("seed", seedPath).Msg("seeding database")
	if err := repositories.SeedPostgresFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}
