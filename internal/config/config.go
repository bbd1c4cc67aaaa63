package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"linewar-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	SteamAPIKey       string
	SteamCommunityURL string
	SteamAPIURL       string
	LeaderboardURL    string
	DBPath            string
	LogLevel          string
	MetricsTextfile   string
	SearchDepth       int
	HTTPTimeout       time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	searchDepth, err := strconv.Atoi(getEnv("SEARCH_DEPTH", strconv.Itoa(constants.DefaultSearchDepth)))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEPTH: %w", err)
	}

	httpTimeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", constants.ExternalAPITimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	cfg := &Config{
		SteamAPIKey:       getEnv("STEAM_API_KEY", ""),
		SteamCommunityURL: getEnv("STEAM_COMMUNITY_URL", "https://steamcommunity.com"),
		SteamAPIURL:       getEnv("STEAM_API_URL", "http://api.steampowered.com"),
		LeaderboardURL:    getEnv("LEADERBOARD_URL", "https://linewar.com/Leaderboard/Index"),
		DBPath:            getEnv("DB_PATH", "linewar.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MetricsTextfile:   getEnv("METRICS_TEXTFILE", ""),
		SearchDepth:       searchDepth,
		HTTPTimeout:       httpTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Str("metrics_textfile", cfg.MetricsTextfile).
		Int("search_depth", cfg.SearchDepth).
		Dur("http_timeout", cfg.HTTPTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SteamAPIKey == "" {
		return fmt.Errorf("STEAM_API_KEY is required")
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("SEARCH_DEPTH must be at least 1, got %d", c.SearchDepth)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
