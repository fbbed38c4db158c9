// Package observability exposes Prometheus metrics for the reward ledger
// engine: event outcomes, token payouts, achievement unlocks, and
// persistence health. Served at /metrics when enabled.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Event Metrics ──────────────────────────────────────────────────────────

// EventsAccepted counts accepted, impactful reduction events.
var EventsAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "events",
	Name:      "accepted_total",
	Help:      "Total reduction events accepted into the ledger.",
})

// EventsRejected counts events rejected by the anti-cheat gate.
var EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "events",
	Name:      "rejected_total",
	Help:      "Total reduction events rejected by the anti-cheat gate.",
})

// EventsNoop counts valid zero-savings events.
var EventsNoop = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "events",
	Name:      "noop_total",
	Help:      "Total zero-impact events (totals refresh only).",
})

// ─── Reward Metrics ─────────────────────────────────────────────────────────

// TokensEarned accumulates the tokens paid out across all accepted events.
var TokensEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "rewards",
	Name:      "tokens_earned_total",
	Help:      "Total EcoTokens earned.",
})

// AchievementsUnlocked counts badge unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "rewards",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievement badges unlocked.",
})

// StreakDays tracks the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ecoledger",
	Subsystem: "rewards",
	Name:      "streak_days",
	Help:      "Current consecutive-day reduction streak.",
})

// ─── Persistence Metrics ────────────────────────────────────────────────────

// StoreLoadFailures counts blobs that failed to load and fell back to
// defaults. Load is best-effort; failures are never fatal.
var StoreLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "store",
	Name:      "load_failures_total",
	Help:      "Total blob load failures replaced by defaults.",
}, []string{"blob"})

// StoreSaveFailures counts failed best-effort writes.
var StoreSaveFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ecoledger",
	Subsystem: "store",
	Name:      "save_failures_total",
	Help:      "Total blob save failures (logged, not surfaced).",
}, []string{"blob"})
