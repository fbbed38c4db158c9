package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrUnrealisticSavings is returned when a reported reduction exceeds
	// the anti-cheat ceiling.
	ErrUnrealisticSavings = errors.New("reported savings look unrealistic")

	// ErrInvalidDate is returned when an event date is not a YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrNotFound is returned by lookups over persisted records.
	ErrNotFound = errors.New("record not found")
)
