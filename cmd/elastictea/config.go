package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/elastictea/internal/server"
	"github.com/DjordjeVuckovic/elastictea/pkg/config/env"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
)

type AppConfig struct {
	RecipePath string
	Workers    int
	LogLevel   slog.Level
	Progress   bool
	ES         *es.Config
	Status     *server.Config
}

func LoadConfig() (*AppConfig, error) {
	if err := env.LoadDotEnv("cmd/elastictea/.env"); err != nil {
		return nil, err
	}

	recipePath := os.Getenv("RECIPE_PATH")
	if recipePath == "" {
		slog.Error("RECIPE_PATH environment variable is not set")
		return nil, fmt.Errorf("RECIPE_PATH environment variable is not set")
	}

	workers, err := env.Int("WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("WORKERS must be at least 1, got %d", workers)
	}

	level, err := parseLevel(env.String("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	esCfg, err := es.LoadEnv()
	if err != nil {
		return nil, err
	}

	statusCfg, err := server.LoadConfig()
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		RecipePath: recipePath,
		Workers:    workers,
		LogLevel:   level,
		Progress:   env.Bool("PROGRESS"),
		ES:         esCfg,
		Status:     statusCfg,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
