package engine

import (
	"context"
	"math"
	"sort"

	"github.com/ecoledger/ecoledger/internal/domain"
)

// ─── Leaderboard Composer ───────────────────────────────────────────────────
// Merges the local lifetime total with a reference comparison set and ranks
// the result. Recomputed on every render call; only cached for display
// continuity, never treated as ledger truth.

// StaticComparisonSource is a fixed reference set standing in for a remote
// leaderboard while no backend exists.
type StaticComparisonSource struct{}

// FetchComparisonSet returns the built-in comparison set.
func (StaticComparisonSource) FetchComparisonSet(context.Context) []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{Name: "GreenGuru", Tokens: 5230},
		{Name: "CarbonCrusher", Tokens: 3480},
		{Name: "PlanetPal", Tokens: 1920},
		{Name: "EcoNinja", Tokens: 640},
	}
}

// ComposeLeaderboard merges the local user into the comparison set, sorts
// descending by tokens, and truncates to the display size.
func ComposeLeaderboard(comparison []domain.LeaderboardEntry, localName string, lifetimeTokens float64, size int) []domain.RankedEntry {
	if localName == "" {
		localName = domain.DefaultDisplayName
	}
	if size <= 0 {
		size = domain.LeaderboardSize
	}

	rows := make([]domain.LeaderboardEntry, 0, len(comparison)+1)
	rows = append(rows, comparison...)
	rows = append(rows, domain.LeaderboardEntry{
		Name:   localName,
		Tokens: int64(math.Round(lifetimeTokens)),
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Tokens > rows[j].Tokens
	})
	if len(rows) > size {
		rows = rows[:size]
	}

	ranked := make([]domain.RankedEntry, len(rows))
	for i, r := range rows {
		ranked[i] = domain.RankedEntry{
			Rank:   i + 1,
			Name:   r.Name,
			Tokens: r.Tokens,
			You:    r.Name == localName,
		}
	}
	return ranked
}
