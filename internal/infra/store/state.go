package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ecoledger/ecoledger/internal/domain"
	"github.com/ecoledger/ecoledger/internal/infra/observability"
)

// Blob keys. Totals and streak share a blob: both are the small keyed state
// the ledger store owns, written and read together.
const (
	blobTotals       = "totals"
	blobHistory      = "history"
	blobAchievements = "achievements"
	blobSnapshot     = "snapshot"
	blobLeaderboard  = "leaderboard"
)

// totalsBlob is the persisted shape of the totals key.
type totalsBlob struct {
	Totals domain.Totals      `json:"totals"`
	Streak domain.StreakState `json:"streak"`
}

// StateStore implements domain.StateStore on the SQLite blob table.
// Load degrades per-blob to defaults and Save logs failures — neither is
// ever fatal to the caller; the worst case is loss of history, not a crash.
type StateStore struct {
	db *DB
}

// NewStateStore wraps an open database.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Load reads the five state blobs. A missing or malformed blob is replaced
// by its default; the rest of the state loads normally (self-healing on the
// next successful save).
func (s *StateStore) Load(_ context.Context) domain.PersistedState {
	state := domain.DefaultState()

	var tb totalsBlob
	if s.loadBlob(blobTotals, &tb) {
		state.Totals = tb.Totals
		state.Streak = tb.Streak
	}
	s.loadBlob(blobHistory, &state.History)
	s.loadBlob(blobAchievements, &state.Achievements)
	s.loadBlob(blobSnapshot, &state.Snapshot)
	s.loadBlob(blobLeaderboard, &state.LeaderboardCache)

	// A corrupt map blob decodes to nil; restore the usable defaults.
	if state.Achievements == nil {
		state.Achievements = make(map[string]domain.AchievementState)
	}
	if state.Snapshot == nil {
		state.Snapshot = make(domain.DailySnapshot)
	}
	if state.History == nil {
		state.History = []domain.LedgerEntry{}
	}
	return state
}

// loadBlob decodes one keyed blob into dst. Returns false when the blob is
// absent or unreadable; dst is untouched on failure.
func (s *StateStore) loadBlob(key string, dst any) bool {
	raw, err := s.db.GetBlob(key)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		observability.StoreLoadFailures.WithLabelValues(key).Inc()
		log.Warn().Err(err).Str("blob", key).Msg("failed to read state blob, using defaults")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		observability.StoreLoadFailures.WithLabelValues(key).Inc()
		log.Warn().Err(err).Str("blob", key).Msg("malformed state blob, using defaults")
		return false
	}
	return true
}

// Save writes the five state blobs. Each failure is logged and counted;
// none is surfaced to the caller.
func (s *StateStore) Save(_ context.Context, state domain.PersistedState) {
	s.saveBlob(blobTotals, totalsBlob{Totals: state.Totals, Streak: state.Streak})
	s.saveBlob(blobHistory, state.History)
	s.saveBlob(blobAchievements, state.Achievements)
	s.saveBlob(blobSnapshot, state.Snapshot)
	s.saveBlob(blobLeaderboard, state.LeaderboardCache)
}

func (s *StateStore) saveBlob(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		observability.StoreSaveFailures.WithLabelValues(key).Inc()
		log.Error().Err(err).Str("blob", key).Msg("failed to encode state blob")
		return
	}
	if err := s.db.PutBlob(key, raw); err != nil {
		observability.StoreSaveFailures.WithLabelValues(key).Inc()
		log.Error().Err(err).Str("blob", key).Msg("failed to write state blob")
	}
}

// ─── Queued Notifier ────────────────────────────────────────────────────────

// QueueNotifier implements domain.Notifier by persisting notifications into
// the pending queue and logging them. Best-effort: a failed insert only logs.
type QueueNotifier struct {
	db *DB
}

// NewQueueNotifier wraps an open database.
func NewQueueNotifier(db *DB) *QueueNotifier {
	return &QueueNotifier{db: db}
}

// Notify queues the notification for the presentation layer to poll.
func (q *QueueNotifier) Notify(n domain.Notification) {
	log.Info().Str("severity", string(n.Severity)).Msg(n.Message)
	if _, err := q.db.InsertNotification(n); err != nil {
		log.Warn().Err(err).Msg("failed to queue notification")
	}
}
