// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"math"
	"time"
)

// ─── Reward Constants ───────────────────────────────────────────────────────

const (
	// TokensPerKg is the payout rate: one kilogram of avoided CO2e earns
	// ten EcoTokens.
	TokensPerKg = 10.0

	// MaxDailySavingsKg is the anti-cheat ceiling for a single reported
	// reduction. Anything strictly above it is rejected.
	MaxDailySavingsKg = 1000.0

	// HistoryCapacity bounds the persisted ledger history. Insertion is at
	// the head (newest first); the tail entry is evicted past capacity.
	HistoryCapacity = 80
)

// Round2 rounds to two decimal places. Token and kg sums are rounded once,
// at the end of an aggregation, never intermediately.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ─── Ledger Types ───────────────────────────────────────────────────────────

// LedgerEntry is one immutable record of a realized footprint reduction and
// its token payout. Invariant: TokensEarned == Round2(SavedKg * TokensPerKg).
type LedgerEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"` // calendar day, YYYY-MM-DD
	SavedKg      float64   `json:"saved_kg"`
	TokensEarned float64   `json:"tokens_earned"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokensFor computes the payout for a given savings amount.
func TokensFor(savedKg float64) float64 {
	return Round2(savedKg * TokensPerKg)
}

// Totals holds the derived time-windowed aggregates. Totals are always
// recomputed from the ledger, never patched incrementally.
type Totals struct {
	LifetimeTokens float64 `json:"lifetime_tokens"`
	TodayTokens    float64 `json:"today_tokens"`
	WeekTokens     float64 `json:"week_tokens"`
	MonthTokens    float64 `json:"month_tokens"`
	TodaySavedKg   float64 `json:"today_saved_kg"`
	WeekSavedKg    float64 `json:"week_saved_kg"`
	MonthSavedKg   float64 `json:"month_saved_kg"`
}

// StreakState tracks consecutive calendar days with at least one qualifying
// reduction. It is mutated once per accepted, non-zero event.
type StreakState struct {
	StreakDays     int    `json:"streak_days"`
	LongestDays    int    `json:"longest_days"`
	LastEarnedDate string `json:"last_earned_date,omitempty"` // empty = uninitialized
}

// DailySnapshot maps a calendar day to the last absolute footprint (kg)
// reported for that day. Write-only bookkeeping kept for a future per-day
// cross-check rule.
type DailySnapshot map[string]float64

// ─── Persisted State ────────────────────────────────────────────────────────

// PersistedState is the full durable state of the reward ledger. Each field
// is stored as an independent blob so corruption in one does not invalidate
// the others.
type PersistedState struct {
	Totals           Totals                      `json:"totals"`
	History          []LedgerEntry               `json:"history"` // head = newest
	Streak           StreakState                 `json:"streak"`
	Achievements     map[string]AchievementState `json:"achievements"`
	Snapshot         DailySnapshot               `json:"snapshot"`
	LeaderboardCache []LeaderboardEntry          `json:"leaderboard_cache"`
}

// DefaultState returns the documented fallback used when the store is
// missing or unreadable.
func DefaultState() PersistedState {
	return PersistedState{
		History:      []LedgerEntry{},
		Achievements: make(map[string]AchievementState),
		Snapshot:     make(DailySnapshot),
	}
}
