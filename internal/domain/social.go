package domain

// ─── Leaderboard & Notification Types ───────────────────────────────────────
// The leaderboard is display-only derived state: the local lifetime total
// merged with a reference comparison set, ranked and truncated. It is never
// treated as durable ledger truth, only cached best-effort for continuity.

// LeaderboardEntry is one row on the leaderboard.
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Tokens int64  `json:"tokens"`
}

// RankedEntry is a leaderboard row with its computed position.
type RankedEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Tokens int64  `json:"tokens"`
	You    bool   `json:"you,omitempty"`
}

// LeaderboardSize is how many rows the composed view keeps.
const LeaderboardSize = 5

// DefaultDisplayName labels the local user's leaderboard row when no name
// is configured.
const DefaultDisplayName = "Eco Hero"

// ─── Notifications ──────────────────────────────────────────────────────────

// Severity classifies a notification for the presentation layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a message for the user: anti-cheat rejections, payout
// confirmations, and achievement unlocks.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
