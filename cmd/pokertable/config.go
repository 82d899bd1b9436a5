package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the terminal client settings. Values come from the optional
// yaml file first, then POKER_* environment variables override.
type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"api"`
	Table struct {
		PollIntervalMS int `yaml:"poll_interval_ms"`
		TurnSeconds    int `yaml:"turn_seconds"`
	} `yaml:"table"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.TimeoutSec = 30
	cfg.Table.PollIntervalMS = 2000
	cfg.Table.TurnSeconds = 30
	return &cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.API.BaseURL = getEnv("POKER_API_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSec = getEnvAsInt("POKER_API_TIMEOUT_SEC", cfg.API.TimeoutSec)
	cfg.Table.PollIntervalMS = getEnvAsInt("POKER_POLL_INTERVAL_MS", cfg.Table.PollIntervalMS)
	cfg.Table.TurnSeconds = getEnvAsInt("POKER_TURN_SECONDS", cfg.Table.TurnSeconds)

	return cfg, nil
}

func (c *Config) pollInterval() time.Duration {
	return time.Duration(c.Table.PollIntervalMS) * time.Millisecond
}

func (c *Config) turnTimeout() time.Duration {
	return time.Duration(c.Table.TurnSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
