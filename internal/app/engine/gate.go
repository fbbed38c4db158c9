package engine

// ─── Anti-Cheat Gate ────────────────────────────────────────────────────────
// A single-event savings above the configured ceiling is implausible and is
// rejected outright: no ledger mutation, no streak update, no achievement
// evaluation. A zero savings is valid but impact-free.

// GateResult classifies a candidate savings value.
type GateResult int

const (
	// GateAccept: valid and impactful — a ledger entry will be created.
	GateAccept GateResult = iota
	// GateNoop: valid but zero-impact — totals refresh only.
	GateNoop
	// GateReject: exceeds the anti-cheat ceiling.
	GateReject
)

// CheckSavings validates a candidate savedKg against the ceiling.
// The ceiling is exclusive-above: savedKg == maxKg is still accepted.
func CheckSavings(savedKg, maxKg float64) GateResult {
	switch {
	case savedKg > maxKg:
		return GateReject
	case savedKg == 0:
		return GateNoop
	default:
		return GateAccept
	}
}
