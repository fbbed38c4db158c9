package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecoledger/ecoledger/internal/app/engine"
	"github.com/ecoledger/ecoledger/internal/domain"
)

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().Float64("current", 0, "Current computed footprint in tonnes CO2e (required)")
	recordCmd.Flags().Float64("previous", -1, "Previous footprint in tonnes; omit to establish a baseline")
	recordCmd.Flags().String("date", "", "Calendar day YYYY-MM-DD (default today)")
	recordCmd.Flags().StringP("message", "m", "", "Note attached to the ledger entry")
	recordCmd.Flags().Bool("silent", false, "Suppress the celebratory notification")
	recordCmd.MarkFlagRequired("current")
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a footprint-reduction event",
	Long: `Record one reduction event against the ledger. With no --previous the
event establishes a baseline without awarding tokens; with one, the saved
kilograms earn EcoTokens at the fixed payout rate.`,
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	eng, db, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	current, _ := cmd.Flags().GetFloat64("current")
	date, _ := cmd.Flags().GetString("date")
	message, _ := cmd.Flags().GetString("message")
	silent, _ := cmd.Flags().GetBool("silent")
	if date == "" {
		date = domain.Day(time.Now())
	}

	red := engine.Reduction{
		CurrentTonnes: current,
		Date:          date,
		Message:       message,
		Silent:        silent,
	}
	if cmd.Flags().Changed("previous") {
		previous, _ := cmd.Flags().GetFloat64("previous")
		red.PreviousTonnes = &previous
	}

	totals, err := eng.RecordReduction(cmd.Context(), red)
	if err != nil {
		return err
	}

	if red.PreviousTonnes == nil {
		fmt.Printf("Baseline recorded for %s (%.3f t CO2e)\n", date, current)
	} else {
		fmt.Printf("Recorded. Today: %.2f tokens, lifetime: %.2f tokens\n",
			totals.TodayTokens, totals.LifetimeTokens)
	}
	return nil
}
