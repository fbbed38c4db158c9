package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ecoledger/ecoledger/internal/api"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the EcoLedger HTTP API",
	Long:  `Serve the ledger REST API for the dashboard: record, summary, history, streak, achievements, leaderboard, and notifications.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, db, cfg, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	srv := api.NewServer(eng, db)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", addr).Bool("metrics", cfg.API.Metrics).Msg("ecoledger API listening")
	return httpSrv.ListenAndServe()
}
