package domain

// ─── Achievement Types ──────────────────────────────────────────────────────
// A fixed catalog of threshold badges over lifetime tokens or streak length.
// Unlocking is monotonic: once a badge is unlocked it is never re-locked.

// AchievementType selects the progress source for a badge.
type AchievementType string

const (
	AchievementTokens AchievementType = "tokens"
	AchievementStreak AchievementType = "streak"
)

// AchievementDef is one catalog entry.
type AchievementDef struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Requirement float64         `json:"requirement"`
	Type        AchievementType `json:"type"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
}

// AchievementState is the persisted unlock record for one badge.
type AchievementState struct {
	Unlocked   bool   `json:"unlocked"`
	UnlockedOn string `json:"unlocked_on,omitempty"` // calendar day
}

// Catalog returns the fixed badge catalog. Badge names follow the original
// reward scheme; thresholds are lifetime tokens except the streak badge.
func Catalog() []AchievementDef {
	return []AchievementDef{
		{
			ID:          "green_starter",
			Title:       "Green Starter",
			Requirement: 100,
			Type:        AchievementTokens,
			Icon:        "🌱",
			Description: "Earn your first 100 EcoTokens.",
		},
		{
			ID:          "eco_warrior",
			Title:       "Eco Warrior",
			Requirement: 1000,
			Type:        AchievementTokens,
			Icon:        "🛡️",
			Description: "Reach 1,000 lifetime EcoTokens.",
		},
		{
			ID:          "zero_carbon_hero",
			Title:       "Zero Carbon Hero",
			Requirement: 10000,
			Type:        AchievementTokens,
			Icon:        "🦸",
			Description: "Reach 10,000 lifetime EcoTokens.",
		},
		{
			ID:          "week_streak",
			Title:       "Seven Day Streak",
			Requirement: 7,
			Type:        AchievementStreak,
			Icon:        "🔥",
			Description: "Log a reduction on seven consecutive days.",
		},
	}
}
