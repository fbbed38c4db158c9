// Package daemon holds the long-running process configuration.
// Config lives at ~/.ecoledger/config.toml; every field has a working
// default so a missing file is not an error.
package daemon

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/ecoledger/ecoledger/internal/domain"
)

// Config is the full daemon configuration.
type Config struct {
	API         APIConfig         `toml:"api"`
	Store       StoreConfig       `toml:"store"`
	Rewards     RewardsConfig     `toml:"rewards"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
}

// APIConfig controls the HTTP server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"` // expose /metrics
}

// StoreConfig controls persistence.
type StoreConfig struct {
	Path string `toml:"path"` // data directory; default ~/.ecoledger
}

// RewardsConfig controls the reward engine.
type RewardsConfig struct {
	MaxDailySavingsKg float64 `toml:"max_daily_savings_kg"`
	HistoryCapacity   int     `toml:"history_capacity"`
}

// LeaderboardConfig controls the composed leaderboard view.
type LeaderboardConfig struct {
	DisplayName string `toml:"display_name"`
	TopN        int    `toml:"top_n"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    7800,
			Metrics: true,
		},
		Store: StoreConfig{
			Path: DefaultDataDir(),
		},
		Rewards: RewardsConfig{
			MaxDailySavingsKg: domain.MaxDailySavingsKg,
			HistoryCapacity:   domain.HistoryCapacity,
		},
		Leaderboard: LeaderboardConfig{
			DisplayName: domain.DefaultDisplayName,
			TopN:        domain.LeaderboardSize,
		},
	}
}

// DefaultDataDir returns ~/.ecoledger, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ecoledger"
	}
	return filepath.Join(home, ".ecoledger")
}

// LoadConfig reads path, layering it over the defaults. A missing file
// returns the defaults; a malformed file logs and returns the defaults.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	if path == "" {
		path = filepath.Join(DefaultDataDir(), "config.toml")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("malformed config file, using defaults")
		return DefaultConfig()
	}
	return cfg
}
