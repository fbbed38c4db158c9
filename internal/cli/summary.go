package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoledger/ecoledger/internal/api"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(versionCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show token totals, streak, and achievements",
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	eng, db, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	totals := eng.Summary()
	streak := eng.Streak()

	fmt.Println("EcoTokens")
	fmt.Printf("  today:    %10.2f  (%.2f kg saved)\n", totals.TodayTokens, totals.TodaySavedKg)
	fmt.Printf("  week:     %10.2f  (%.2f kg saved)\n", totals.WeekTokens, totals.WeekSavedKg)
	fmt.Printf("  month:    %10.2f  (%.2f kg saved)\n", totals.MonthTokens, totals.MonthSavedKg)
	fmt.Printf("  lifetime: %10.2f\n", totals.LifetimeTokens)
	fmt.Printf("Streak: %d day(s), longest %d\n", streak.StreakDays, streak.LongestDays)

	fmt.Println("Achievements")
	for _, a := range eng.Achievements() {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Printf("  [%s] %s %s — %s\n", mark, a.Icon, a.Title, a.Description)
	}
	return nil
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the comparison leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, db, _, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		for _, row := range eng.Leaderboard(cmd.Context()) {
			you := ""
			if row.You {
				you = "  <- you"
			}
			fmt.Printf("%d. %-16s %6d%s\n", row.Rank, row.Name, row.Tokens, you)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ecoledger version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ecoledger", api.Version)
	},
}
