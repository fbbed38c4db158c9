// Package store persists the reward ledger state in SQLite.
//
// The durable layout is a key/value blob table: five independent keyed
// blobs (totals+streak, history, achievements, daily snapshot, leaderboard
// cache), each loadable on its own so corruption in one never invalidates
// the others. A notifications table backs the pull-based pending queue.
package store

import (
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ecoledger/ecoledger/internal/domain"
)

// DB wraps the SQLite connection.
type DB struct {
	db *sql.DB
}

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Keyed state blobs
		`CREATE TABLE IF NOT EXISTS state_blobs (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Pending notification queue
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			message    TEXT NOT NULL,
			severity   TEXT NOT NULL,
			shown      INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_pending ON notifications(shown, created_at)`,
	}
}

// Open opens (or creates) the ledger database inside dir.
func Open(dir string) (*DB, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, "ecoledger.db"))
	if err != nil {
		return nil, err
	}
	// The engine is a single cooperative writer; one connection avoids
	// SQLITE_BUSY on interleaved reads.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Blob Operations ────────────────────────────────────────────────────────

// GetBlob returns the raw blob for key, or sql.ErrNoRows if absent.
func (db *DB) GetBlob(key string) ([]byte, error) {
	var value string
	err := db.db.QueryRow(`SELECT value FROM state_blobs WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// PutBlob upserts the raw blob for key.
func (db *DB) PutBlob(key string, value []byte) error {
	_, err := db.db.Exec(`
		INSERT INTO state_blobs (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = datetime('now')
	`, key, string(value))
	return err
}

// ─── Notification Operations ────────────────────────────────────────────────

// PendingNotification is one queued, not-yet-shown notification.
type PendingNotification struct {
	ID        int64           `json:"id"`
	Message   string          `json:"message"`
	Severity  domain.Severity `json:"severity"`
	CreatedAt time.Time       `json:"created_at"`
}

// InsertNotification queues a notification for the presentation layer.
func (db *DB) InsertNotification(n domain.Notification) (int64, error) {
	res, err := db.db.Exec(`
		INSERT INTO notifications (message, severity) VALUES (?, ?)
	`, n.Message, string(n.Severity))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PendingNotifications returns up to limit unshown notifications, oldest first.
func (db *DB) PendingNotifications(limit int) ([]PendingNotification, error) {
	rows, err := db.db.Query(`
		SELECT id, message, severity, created_at FROM notifications
		WHERE shown = 0 ORDER BY created_at, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PendingNotification
	for rows.Next() {
		var n PendingNotification
		var createdStr string
		if err := rows.Scan(&n.ID, &n.Message, &n.Severity, &createdStr); err != nil {
			return nil, err
		}
		n.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkNotificationShown marks a queued notification as shown.
func (db *DB) MarkNotificationShown(id int64) error {
	res, err := db.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
