// Package engine implements the reward ledger engine: anti-cheat gating,
// ledger mutation, window aggregation, streak tracking, achievement
// unlocking, and leaderboard composition.
//
// The engine owns its state explicitly — loaded from the store at
// construction, mutated in memory, written back fully after every
// operation. No package globals.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecoledger/ecoledger/internal/domain"
	"github.com/ecoledger/ecoledger/internal/infra/observability"
)

// Config controls engine behavior.
type Config struct {
	MaxDailySavingsKg float64 // Anti-cheat ceiling (default: domain.MaxDailySavingsKg)
	HistoryCapacity   int     // Ledger history bound (default: domain.HistoryCapacity)
	DisplayName       string  // Local leaderboard row label
	LeaderboardSize   int     // Rows kept in the composed view
}

// DefaultConfig returns the documented engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxDailySavingsKg: domain.MaxDailySavingsKg,
		HistoryCapacity:   domain.HistoryCapacity,
		DisplayName:       domain.DefaultDisplayName,
		LeaderboardSize:   domain.LeaderboardSize,
	}
}

// Engine is the event recorder: the public entry point sequencing
// gate → ledger → streak → aggregation → achievements → signals.
type Engine struct {
	mu         sync.Mutex
	cfg        Config
	store      domain.StateStore
	notifier   domain.Notifier
	comparison domain.ComparisonSource
	observer   domain.Observer
	clock      func() time.Time
	state      domain.PersistedState
}

// Option customizes engine construction.
type Option func(*Engine)

// WithNotifier sets the notification sink.
func WithNotifier(n domain.Notifier) Option { return func(e *Engine) { e.notifier = n } }

// WithComparisonSource sets the leaderboard comparison source.
func WithComparisonSource(c domain.ComparisonSource) Option {
	return func(e *Engine) { e.comparison = c }
}

// WithObserver sets the render-trigger observer.
func WithObserver(o domain.Observer) Option { return func(e *Engine) { e.observer = o } }

// WithClock overrides the time source (tests).
func WithClock(clock func() time.Time) Option { return func(e *Engine) { e.clock = clock } }

// New loads persisted state from the store and returns a ready engine.
func New(ctx context.Context, cfg Config, store domain.StateStore, opts ...Option) *Engine {
	if cfg.MaxDailySavingsKg <= 0 {
		cfg.MaxDailySavingsKg = domain.MaxDailySavingsKg
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = domain.HistoryCapacity
	}
	e := &Engine{
		cfg:        cfg,
		store:      store,
		comparison: StaticComparisonSource{},
		clock:      time.Now,
		state:      store.Load(ctx),
	}
	for _, opt := range opts {
		opt(e)
	}
	// Heal totals against the loaded ledger: the aggregator is the source
	// of truth, not whatever the blob said.
	e.state.Totals = Aggregate(e.state.History, e.clock())
	observability.StreakDays.Set(float64(e.state.Streak.StreakDays))
	return e
}

// Reduction is one reported footprint-reduction event.
type Reduction struct {
	CurrentTonnes  float64  // Current computed footprint, tonnes CO2e
	PreviousTonnes *float64 // Previous footprint, tonnes; nil = no baseline yet
	Date           string   // Calendar day, YYYY-MM-DD
	Message        string   // Free-form note attached to the ledger entry
	Silent         bool     // Suppress the celebratory notification
}

// RecordReduction is the public mutating operation. It validates the event,
// appends to the ledger, refreshes derived state, and persists. The returned
// totals reflect the post-event ledger. A gate rejection returns
// domain.ErrUnrealisticSavings with no state mutated.
func (e *Engine) RecordReduction(ctx context.Context, r Reduction) (domain.Totals, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := domain.ParseDay(r.Date); err != nil {
		return e.state.Totals, fmt.Errorf("%w: %q", domain.ErrInvalidDate, r.Date)
	}

	currentKg := max(0, r.CurrentTonnes) * 1000

	// No baseline: remember today's footprint, refresh totals, award nothing.
	if r.PreviousTonnes == nil {
		e.state.Snapshot[r.Date] = currentKg
		e.state.Totals = Aggregate(e.state.History, e.clock())
		e.persist(ctx)
		e.signal()
		return e.state.Totals, nil
	}

	previousKg := max(0, *r.PreviousTonnes) * 1000
	savedKg := max(0, previousKg-currentKg)

	switch CheckSavings(savedKg, e.cfg.MaxDailySavingsKg) {
	case GateReject:
		observability.EventsRejected.Inc()
		e.notify(domain.Notification{
			Message:  "Reported savings look unrealistic — not recorded.",
			Severity: domain.SeverityError,
		})
		return e.state.Totals, domain.ErrUnrealisticSavings

	case GateNoop:
		observability.EventsNoop.Inc()
		e.state.Snapshot[r.Date] = currentKg
		e.state.Totals = Aggregate(e.state.History, e.clock())
		e.persist(ctx)
		e.signal()
		return e.state.Totals, nil
	}

	// Accepted, impactful event.
	e.state.Snapshot[r.Date] = currentKg

	entry := domain.LedgerEntry{
		ID:           uuid.NewString(),
		Date:         r.Date,
		SavedKg:      savedKg,
		TokensEarned: domain.TokensFor(savedKg),
		Message:      r.Message,
		CreatedAt:    e.clock(),
	}
	e.state.History = append([]domain.LedgerEntry{entry}, e.state.History...)
	if len(e.state.History) > e.cfg.HistoryCapacity {
		e.state.History = e.state.History[:e.cfg.HistoryCapacity]
	}

	e.state.Streak = AdvanceStreak(e.state.Streak, r.Date)
	e.state.Totals = Aggregate(e.state.History, e.clock())

	unlocked := EvaluateAchievements(e.state.Achievements, e.state.Totals, e.state.Streak, r.Date)
	for _, def := range unlocked {
		observability.AchievementsUnlocked.Inc()
		e.notify(domain.Notification{
			Message:  fmt.Sprintf("Achievement unlocked: %s %s", def.Icon, def.Title),
			Severity: domain.SeveritySuccess,
		})
	}

	observability.EventsAccepted.Inc()
	observability.TokensEarned.Add(entry.TokensEarned)
	observability.StreakDays.Set(float64(e.state.Streak.StreakDays))

	if !r.Silent {
		e.notify(domain.Notification{
			Message:  fmt.Sprintf("You saved %.2f kg CO2e and earned %.2f EcoTokens!", savedKg, entry.TokensEarned),
			Severity: domain.SeveritySuccess,
		})
	}

	e.persist(ctx)
	e.signal()
	return e.state.Totals, nil
}

// Reload merges freshly loaded persisted state into the in-memory state and
// recomputes derived totals. Called at session boundaries.
func (e *Engine) Reload(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loaded := e.store.Load(ctx)
	e.state = MergeStates(e.state, loaded, e.cfg.HistoryCapacity)
	e.state.Totals = Aggregate(e.state.History, e.clock())
}

// ─── Read Side ──────────────────────────────────────────────────────────────
// Pull-based: the presentation layer asks for fresh snapshots after any
// mutating call. Every read recomputes from stored truth plus current date.

// Summary returns totals evaluated against the current date.
func (e *Engine) Summary() domain.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Aggregate(e.state.History, e.clock())
}

// History returns the ledger entries, newest first.
func (e *Engine) History() []domain.LedgerEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.LedgerEntry, len(e.state.History))
	copy(out, e.state.History)
	return out
}

// Streak returns the current streak state.
func (e *Engine) Streak() domain.StreakState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Streak
}

// Achievements returns the full catalog with unlock state and progress.
func (e *Engine) Achievements() []AchievementView {
	e.mu.Lock()
	defer e.mu.Unlock()
	totals := Aggregate(e.state.History, e.clock())
	return AchievementProgress(e.state.Achievements, totals, e.state.Streak)
}

// Leaderboard composes the ranked view from the comparison source and the
// local lifetime total. The result is cached best-effort for display
// continuity on the next load.
func (e *Engine) Leaderboard(ctx context.Context) []domain.RankedEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	totals := Aggregate(e.state.History, e.clock())
	ranked := ComposeLeaderboard(e.comparison.FetchComparisonSet(ctx), e.cfg.DisplayName, totals.LifetimeTokens, e.cfg.LeaderboardSize)

	cache := make([]domain.LeaderboardEntry, len(ranked))
	for i, r := range ranked {
		cache[i] = domain.LeaderboardEntry{Name: r.Name, Tokens: r.Tokens}
	}
	e.state.LeaderboardCache = cache
	return ranked
}

// ─── Internal ───────────────────────────────────────────────────────────────

func (e *Engine) persist(ctx context.Context) {
	e.store.Save(ctx, e.state)
}

func (e *Engine) notify(n domain.Notification) {
	if e.notifier == nil {
		log.Debug().Str("severity", string(n.Severity)).Msg(n.Message)
		return
	}
	e.notifier.Notify(n)
}

func (e *Engine) signal() {
	if e.observer != nil {
		e.observer.StateChanged()
	}
}
