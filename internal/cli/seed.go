package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecoledger/ecoledger/internal/app/engine"
	"github.com/ecoledger/ecoledger/internal/domain"
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Int("days", 14, "How many past days to seed")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo reduction events",
	Long: `Seed the ledger with plausible demo data: one baseline plus one
reduction per day over the past N days. Events are recorded through the
normal gate and streak machinery, silently.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	eng, db, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	days, _ := cmd.Flags().GetInt("days")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	footprint := 0.020 // tonnes/day starting point
	for i := days - 1; i >= 0; i-- {
		day := domain.Day(time.Now().AddDate(0, 0, -i))
		previous := footprint
		footprint = max(0.004, footprint-rng.Float64()*0.004)

		if _, err := eng.RecordReduction(cmd.Context(), engine.Reduction{
			CurrentTonnes:  footprint,
			PreviousTonnes: &previous,
			Date:           day,
			Message:        "demo seed",
			Silent:         true,
		}); err != nil {
			return fmt.Errorf("seed %s: %w", day, err)
		}
	}

	totals := eng.Summary()
	fmt.Printf("Seeded %d day(s). Lifetime tokens: %.2f\n", days, totals.LifetimeTokens)
	return nil
}
