package engine

import "github.com/ecoledger/ecoledger/internal/domain"

// ─── Achievement Engine ─────────────────────────────────────────────────────
// Evaluated after every accepted, non-zero event, immediately after totals
// and streak are refreshed, so unlock timing is consistent with the totals
// that triggered it. Unlocking is one-way: no automatic re-lock.

// EvaluateAchievements checks every catalog badge against the current
// progress and unlocks any newly earned ones in the state map. Newly
// unlocked definitions are returned for a one-shot celebratory signal.
func EvaluateAchievements(states map[string]domain.AchievementState, totals domain.Totals, streak domain.StreakState, day string) []domain.AchievementDef {
	var unlocked []domain.AchievementDef
	for _, def := range domain.Catalog() {
		if states[def.ID].Unlocked {
			continue
		}

		progress := totals.LifetimeTokens
		if def.Type == domain.AchievementStreak {
			progress = float64(streak.StreakDays)
		}
		if progress < def.Requirement {
			continue
		}

		states[def.ID] = domain.AchievementState{Unlocked: true, UnlockedOn: day}
		unlocked = append(unlocked, def)
	}
	return unlocked
}

// AchievementView pairs a catalog badge with its unlock state for display.
type AchievementView struct {
	domain.AchievementDef
	Unlocked   bool    `json:"unlocked"`
	UnlockedOn string  `json:"unlocked_on,omitempty"`
	Progress   float64 `json:"progress"`
}

// AchievementProgress composes the full catalog with unlock state and
// current progress for the presentation layer.
func AchievementProgress(states map[string]domain.AchievementState, totals domain.Totals, streak domain.StreakState) []AchievementView {
	views := make([]AchievementView, 0, len(domain.Catalog()))
	for _, def := range domain.Catalog() {
		progress := totals.LifetimeTokens
		if def.Type == domain.AchievementStreak {
			progress = float64(streak.StreakDays)
		}
		st := states[def.ID]
		views = append(views, AchievementView{
			AchievementDef: def,
			Unlocked:       st.Unlocked,
			UnlockedOn:     st.UnlockedOn,
			Progress:       progress,
		})
	}
	return views
}
