package engine

import (
	"time"

	"github.com/ecoledger/ecoledger/internal/domain"
)

// ─── Aggregator ─────────────────────────────────────────────────────────────
// Totals are a pure function of (ledger entries, now): a full rescan over a
// bounded history, never an incremental patch. That keeps recomputation
// idempotent and safe to run after merges or at any read.

// Aggregate computes the time-windowed totals for the given ledger relative
// to now. Windows: today = now's calendar day, week = inclusive trailing
// 7 days, month = now's calendar month. Sums are rounded once, at the end.
func Aggregate(history []domain.LedgerEntry, now time.Time) domain.Totals {
	today := domain.Day(now)
	weekStart := domain.WeekStart(now)
	monthStart := domain.MonthStart(now)

	var t domain.Totals
	for _, e := range history {
		t.LifetimeTokens += e.TokensEarned

		if e.Date >= weekStart {
			t.WeekTokens += e.TokensEarned
			t.WeekSavedKg += e.SavedKg
		}
		if e.Date >= monthStart {
			t.MonthTokens += e.TokensEarned
			t.MonthSavedKg += e.SavedKg
		}
		if e.Date == today {
			t.TodayTokens += e.TokensEarned
			t.TodaySavedKg += e.SavedKg
		}
	}

	t.LifetimeTokens = domain.Round2(t.LifetimeTokens)
	t.TodayTokens = domain.Round2(t.TodayTokens)
	t.WeekTokens = domain.Round2(t.WeekTokens)
	t.MonthTokens = domain.Round2(t.MonthTokens)
	t.TodaySavedKg = domain.Round2(t.TodaySavedKg)
	t.WeekSavedKg = domain.Round2(t.WeekSavedKg)
	t.MonthSavedKg = domain.Round2(t.MonthSavedKg)
	return t
}
