package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// StateStore abstracts the persistence substrate for ledger state.
// Both methods are best-effort by contract: Load degrades to defaults on
// missing or malformed blobs, and Save failures are logged by the
// implementation, never surfaced as fatal to the caller.
type StateStore interface {
	Load(ctx context.Context) PersistedState
	Save(ctx context.Context, state PersistedState)
}

// Notifier is the sink for user-facing notifications (anti-cheat rejections,
// payout confirmations, achievement unlocks).
type Notifier interface {
	Notify(n Notification)
}

// ComparisonSource supplies the reference comparison set merged into the
// leaderboard. A remote backend can be substituted without touching the
// composer's merge/sort logic.
type ComparisonSource interface {
	FetchComparisonSet(ctx context.Context) []LeaderboardEntry
}

// Observer receives a render-trigger signal after any mutating operation.
// The presentation layer pulls fresh data in response; nothing is pushed.
type Observer interface {
	StateChanged()
}
