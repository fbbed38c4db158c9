// Package cli implements the ecoledger command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ecoledger/ecoledger/internal/app/engine"
	"github.com/ecoledger/ecoledger/internal/daemon"
	"github.com/ecoledger/ecoledger/internal/infra/store"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ecoledger",
	Short: "EcoLedger — carbon reward ledger and aggregation engine",
	Long: `EcoLedger turns footprint-reduction events into EcoTokens: a bounded
event ledger with daily/weekly/monthly/lifetime totals, a consecutive-day
streak, threshold achievements, and a comparison leaderboard.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default ~/.ecoledger/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openEngine loads config, opens the store, and builds an engine with the
// queue-backed notifier. Callers must Close the returned DB.
func openEngine(ctx context.Context) (*engine.Engine, *store.DB, daemon.Config, error) {
	cfg := daemon.LoadConfig(configPath)

	if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
		return nil, nil, cfg, fmt.Errorf("create data dir: %w", err)
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("open store: %w", err)
	}

	eng := engine.New(ctx, engine.Config{
		MaxDailySavingsKg: cfg.Rewards.MaxDailySavingsKg,
		HistoryCapacity:   cfg.Rewards.HistoryCapacity,
		DisplayName:       cfg.Leaderboard.DisplayName,
		LeaderboardSize:   cfg.Leaderboard.TopN,
	}, store.NewStateStore(db), engine.WithNotifier(store.NewQueueNotifier(db)))

	return eng, db, cfg, nil
}
