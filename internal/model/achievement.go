package model

import "time"

// AchievementRecord marks a static achievement definition as unlocked.
// Records are created on first unlock and never deleted; the unlocked
// flag is one-way.
type AchievementRecord struct {
	ID         string     `json:"id"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}
