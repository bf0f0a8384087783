package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port           string
	DBPath         string
	DatabaseURL    string
	SeedPath       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LengthCacheTTL time.Duration
	LogLevel       string
}

// Load reads a .env file into the environment if one exists.
// It reports whether a file was found; a missing file is not an error.
func Load(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative", key)
	}
	return d, nil
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		SeedPath:      Get("SEED_PATH", "data/seeds/ways.json"),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      Get("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = GetInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.LengthCacheTTL, err = GetDuration("LENGTH_CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
