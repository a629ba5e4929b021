package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort            = 9191
	defaultCleanupInterval = time.Minute * 20
)

type Config struct {
	Stage                  string
	Port                   int
	DatabaseUrl            string
	MigrationSource        string
	AiSeed                 *uint64
	SessionCleanupInterval time.Duration
}

// Load reads the environment. Outside prod a .env file is loaded first
// when present.
func Load() (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Stage:                  getenv("STAGE"),
		Port:                   defaultPort,
		DatabaseUrl:            getenv("DATABASE_URL"),
		MigrationSource:        getenv("MIGRATION_SOURCE"),
		SessionCleanupInterval: defaultCleanupInterval,
	}

	if cfg.Stage == "" {
		cfg.Stage = StageDev
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", cfg.Stage)
	}

	if portEnv := getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		if port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("PORT out of range: %d", port)
		}
		cfg.Port = port
	}

	if seedEnv := getenv("AI_SEED"); seedEnv != "" {
		seed, err := strconv.ParseUint(seedEnv, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_SEED: %w", err)
		}
		cfg.AiSeed = &seed
	}

	if intervalEnv := getenv("SESSION_CLEANUP_INTERVAL"); intervalEnv != "" {
		interval, err := time.ParseDuration(intervalEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_CLEANUP_INTERVAL: %w", err)
		}
		cfg.SessionCleanupInterval = interval
	}

	return cfg, nil
}
