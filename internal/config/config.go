// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatasetURL is the price table fetched when DATASET_URL is not set.
const DefaultDatasetURL = "https://raw.githubusercontent.com/gahoccode/Datasets/main/myport2.csv"

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the dataset cache database
	Port     int
	LogLevel string
	DevMode  bool

	DatasetURL string        // CSV price table location
	DatasetTTL time.Duration // How long a cached dataset stays fresh

	// Simulation parameters. PeriodsPerYear is the annualization factor
	// applied to per-step log returns (252 for daily bars). It is injected
	// into the statistics builder so synthetic calendars (weekly data, test
	// fixtures) work without code changes.
	PeriodsPerYear  float64
	DefaultRiskFree float64
	DefaultTrials   int
	MinTrials       int
	MaxTrials       int
	DefaultSeed     int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("FRONTIER_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:         absDataDir,
		Port:            getEnvAsInt("FRONTIER_PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		DatasetURL:      getEnv("DATASET_URL", DefaultDatasetURL),
		DatasetTTL:      time.Duration(getEnvAsInt("DATASET_TTL_HOURS", 24)) * time.Hour,
		PeriodsPerYear:  getEnvAsFloat("TRADING_PERIODS_PER_YEAR", 252),
		DefaultRiskFree: getEnvAsFloat("DEFAULT_RISK_FREE_RATE", 0.0),
		DefaultTrials:   getEnvAsInt("DEFAULT_NUM_PORTFOLIOS", 5000),
		MinTrials:       getEnvAsInt("MIN_NUM_PORTFOLIOS", 1000),
		MaxTrials:       getEnvAsInt("MAX_NUM_PORTFOLIOS", 20000),
		DefaultSeed:     int64(getEnvAsInt("DEFAULT_SEED", 42)),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.PeriodsPerYear <= 0 {
		return fmt.Errorf("TRADING_PERIODS_PER_YEAR must be positive, got %v", c.PeriodsPerYear)
	}
	if c.MinTrials < 1 || c.MaxTrials < c.MinTrials {
		return fmt.Errorf("invalid trial bounds [%d, %d]", c.MinTrials, c.MaxTrials)
	}
	if c.DefaultTrials < c.MinTrials || c.DefaultTrials > c.MaxTrials {
		return fmt.Errorf("DEFAULT_NUM_PORTFOLIOS %d outside [%d, %d]", c.DefaultTrials, c.MinTrials, c.MaxTrials)
	}
	if c.DatasetURL == "" {
		return fmt.Errorf("DATASET_URL must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
