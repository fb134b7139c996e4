package model

import "time"

type ChoreStatus string

const (
	ChoreStatusPending   ChoreStatus = "pending"
	ChoreStatusCompleted ChoreStatus = "completed"
)

type ChoreCategory string

const (
	CategoryHousehold ChoreCategory = "household"
	CategoryHomework  ChoreCategory = "homework"
	CategoryBehavior  ChoreCategory = "behavior"
	CategoryOther     ChoreCategory = "other"
)

type Chore struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Reward      int64         `json:"reward"`
	Category    ChoreCategory `json:"category"`
	Difficulty  Difficulty    `json:"difficulty"`
	Status      ChoreStatus   `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt"`
	CreatedBy   string        `json:"createdBy"`
}
