package engine

import (
	"sort"

	"github.com/ecoledger/ecoledger/internal/domain"
)

// ─── State Merge ────────────────────────────────────────────────────────────
// A session reload may find persisted state that diverges from what is in
// memory (an earlier save, another tab, a partially corrupt blob replaced by
// defaults). Merging must never corrupt: achievements stay unlocked, history
// stays deduplicated and bounded, and totals are recomputed afterwards.

// MergeStates merges loaded persisted state into the current in-memory
// state. Totals are NOT merged — callers recompute them via Aggregate.
func MergeStates(current, loaded domain.PersistedState, capacity int) domain.PersistedState {
	if capacity <= 0 {
		capacity = domain.HistoryCapacity
	}

	merged := domain.DefaultState()
	merged.History = mergeHistory(current.History, loaded.History, capacity)
	merged.Streak = mergeStreak(current.Streak, loaded.Streak)
	merged.Achievements = mergeAchievements(current.Achievements, loaded.Achievements)
	merged.Snapshot = mergeSnapshot(current.Snapshot, loaded.Snapshot)

	merged.LeaderboardCache = current.LeaderboardCache
	if len(merged.LeaderboardCache) == 0 {
		merged.LeaderboardCache = loaded.LeaderboardCache
	}
	return merged
}

// mergeHistory unions the two ledgers, dedupes by entry ID, restores
// newest-first order, and re-applies the capacity bound.
func mergeHistory(a, b []domain.LedgerEntry, capacity int) []domain.LedgerEntry {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]domain.LedgerEntry, 0, len(a)+len(b))
	for _, e := range append(append([]domain.LedgerEntry{}, a...), b...) {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > capacity {
		out = out[:capacity]
	}
	return out
}

// mergeStreak keeps the side with the most recent earned date; the longest
// streak card is the max of both.
func mergeStreak(a, b domain.StreakState) domain.StreakState {
	winner := a
	if a.LastEarnedDate == "" || (b.LastEarnedDate != "" && b.LastEarnedDate > a.LastEarnedDate) {
		winner = b
	}
	if a.LongestDays > winner.LongestDays {
		winner.LongestDays = a.LongestDays
	}
	if b.LongestDays > winner.LongestDays {
		winner.LongestDays = b.LongestDays
	}
	return winner
}

// mergeAchievements is unlocked-wins: a badge unlocked on either side stays
// unlocked, keeping the earliest unlock date.
func mergeAchievements(a, b map[string]domain.AchievementState) map[string]domain.AchievementState {
	out := make(map[string]domain.AchievementState, len(a)+len(b))
	for id, st := range a {
		out[id] = st
	}
	for id, st := range b {
		cur, ok := out[id]
		if !ok {
			out[id] = st
			continue
		}
		if st.Unlocked && !cur.Unlocked {
			out[id] = st
		} else if st.Unlocked && cur.Unlocked && st.UnlockedOn != "" && (cur.UnlockedOn == "" || st.UnlockedOn < cur.UnlockedOn) {
			out[id] = st
		}
	}
	return out
}

// mergeSnapshot unions the per-day footprint maps; the current side wins on
// conflict since it reflects the latest report.
func mergeSnapshot(a, b domain.DailySnapshot) domain.DailySnapshot {
	out := make(domain.DailySnapshot, len(a)+len(b))
	for d, kg := range b {
		out[d] = kg
	}
	for d, kg := range a {
		out[d] = kg
	}
	return out
}
