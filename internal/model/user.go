package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Settings struct {
	Difficulty           Difficulty `json:"difficulty"`
	SoundEnabled         bool       `json:"soundEnabled"`
	NotificationsEnabled bool       `json:"notificationsEnabled"`
	Theme                Theme      `json:"theme"`
}

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar"`
	Balance    int64     `json:"balance"`
	Level      int       `json:"level"`
	XP         int64     `json:"xp"`
	CreatedAt  time.Time `json:"createdAt"`
	ParentMode bool      `json:"parentMode"`
	// ParentPIN holds a bcrypt hash, never the raw PIN.
	ParentPIN string   `json:"parentPin,omitempty"`
	Settings  Settings `json:"settings"`
}

// LevelForXP returns the level implied by an XP total: one level per
// 1000 XP, starting at level 1.
func LevelForXP(xp int64) int {
	return int(xp/1000) + 1
}
