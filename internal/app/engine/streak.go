package engine

import "github.com/ecoledger/ecoledger/internal/domain"

// ─── Streak Tracker ─────────────────────────────────────────────────────────
// Incremental state machine over calendar-day gaps, transitioned once per
// accepted, non-zero event. The tracker assumes forward-only event arrival:
// a backdated event is treated as a broken streak, same as a skipped day.

// AdvanceStreak applies one accepted event dated day to the streak state and
// returns the updated state.
//
//	no prior date  → streak starts at 1
//	gap == 0       → same-day re-save, no change
//	gap == 1       → consecutive day, streak extends
//	gap > 1, < 0   → streak broken, reset to 1
func AdvanceStreak(s domain.StreakState, day string) domain.StreakState {
	if s.LastEarnedDate == "" {
		s.StreakDays = 1
		s.LastEarnedDate = day
	} else {
		switch gap := domain.DaysBetween(day, s.LastEarnedDate); {
		case gap == 0:
			// Same calendar day does not double-count.
		case gap == 1:
			s.StreakDays++
			s.LastEarnedDate = day
		default:
			s.StreakDays = 1
			s.LastEarnedDate = day
		}
	}
	if s.StreakDays > s.LongestDays {
		s.LongestDays = s.StreakDays
	}
	return s
}
