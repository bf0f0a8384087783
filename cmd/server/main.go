package main

import (
	"context"
	"database/sql"
	"fmt"
	"geodistance-service/internal/adapters/cache"
	"geodistance-service/internal/adapters/distance"
	"geodistance-service/internal/adapters/repositories"
	"geodistance-service/internal/api"
	"geodistance-service/internal/config"
	"geodistance-service/internal/platform/db"
	"geodistance-service/internal/platform/obs"
	"geodistance-service/internal/ports"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		bootLogger := obs.NewLogger("info")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := obs.NewLogger(cfg.LogLevel)
	if !foundEnv {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	ctx := logger.WithContext(context.Background())

	store, repo, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open way store")
	}
	defer store.Close()

	var lengthCache ports.LengthCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		lengthCache = cache.NewRedisLengthCache(client, cfg.LengthCacheTTL)
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.LengthCacheTTL).Msg("way length cache enabled")
	}

	provider := distance.NewHaversineProvider(true)
	router := api.NewRouter(repo, lengthCache, provider, logger)

	logger.Info().Str("addr", ":"+cfg.Port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// openStore picks Postgres when DATABASE_URL is set and a local SQLite file otherwise.
// Schema and demo data are initialized on startup for local runs.
func openStore(ctx context.Context, cfg config.Config) (*sql.DB, ports.WayRepository, error) {
	log := zerolog.Ctx(ctx)

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := repositories.SeedPostgresFromJSON(ctx, conn, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		log.Info().Str("seed", cfg.SeedPath).Msg("postgres way store ready")
		return conn, repositories.NewSQLWayRepository(conn), nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	if err := repositories.SeedFromJSON(ctx, conn, cfg.SeedPath); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	log.Info().Str("db", cfg.DBPath).Str("seed", cfg.SeedPath).Msg("sqlite way store ready")
	return conn, repositories.NewSqliteWayRepository(conn), nil
}
