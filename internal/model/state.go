package model

// State is a full snapshot of the five persisted slices.
type State struct {
	User         User                `json:"user"`
	Chores       []Chore             `json:"chores"`
	Transactions []Transaction       `json:"transactions"`
	Achievements []AchievementRecord `json:"achievements"`
	Lessons      []string            `json:"lessons"`
}
