// Package event defines the closed set of events emitted by the state
// container, each with its own payload type, and the bus that dispatches
// them to subscribers in subscription order.
package event

import "github.com/dukerupert/satpocket/internal/model"

// Kind identifies one event in the contract surface consumed by the
// view layer.
type Kind int

const (
	KindStoreInitialized Kind = iota
	KindStoreReset
	KindUserUpdated
	KindChoreAdded
	KindChoreUpdated
	KindChoreDeleted
	KindChoreCompleted
	KindTransactionAdded
	KindBalanceChanged
	KindLevelUp
	KindAchievementUnlocked
	KindLessonCompleted
)

var kindNames = map[Kind]string{
	KindStoreInitialized:    "store:initialized",
	KindStoreReset:          "store:reset",
	KindUserUpdated:         "user:updated",
	KindChoreAdded:          "chore:added",
	KindChoreUpdated:        "chore:updated",
	KindChoreDeleted:        "chore:deleted",
	KindChoreCompleted:      "chore:completed",
	KindTransactionAdded:    "transaction:added",
	KindBalanceChanged:      "balance:changed",
	KindLevelUp:             "level:up",
	KindAchievementUnlocked: "achievement:unlocked",
	KindLessonCompleted:     "lesson:completed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is implemented by exactly one payload struct per Kind.
type Event interface {
	Kind() Kind
}

type StoreInitialized struct {
	State model.State `json:"state"`
}

func (StoreInitialized) Kind() Kind { return KindStoreInitialized }

type StoreReset struct {
	State model.State `json:"state"`
}

func (StoreReset) Kind() Kind { return KindStoreReset }

type UserUpdated struct {
	User model.User `json:"user"`
}

func (UserUpdated) Kind() Kind { return KindUserUpdated }

type ChoreAdded struct {
	Chore model.Chore `json:"chore"`
}

func (ChoreAdded) Kind() Kind { return KindChoreAdded }

type ChoreUpdated struct {
	Chore model.Chore `json:"chore"`
}

func (ChoreUpdated) Kind() Kind { return KindChoreUpdated }

type ChoreDeleted struct {
	Chore model.Chore `json:"chore"`
}

func (ChoreDeleted) Kind() Kind { return KindChoreDeleted }

type ChoreCompleted struct {
	Chore model.Chore `json:"chore"`
}

func (ChoreCompleted) Kind() Kind { return KindChoreCompleted }

type TransactionAdded struct {
	Transaction model.Transaction `json:"transaction"`
}

func (TransactionAdded) Kind() Kind { return KindTransactionAdded }

type BalanceChanged struct {
	Previous int64 `json:"previous"`
	Current  int64 `json:"current"`
	Change   int64 `json:"change"`
}

func (BalanceChanged) Kind() Kind { return KindBalanceChanged }

type LevelUp struct {
	Level int `json:"level"`
}

func (LevelUp) Kind() Kind { return KindLevelUp }

type AchievementUnlocked struct {
	AchievementID string `json:"achievementId"`
}

func (AchievementUnlocked) Kind() Kind { return KindAchievementUnlocked }

type LessonCompleted struct {
	LessonID string `json:"lessonId"`
}

func (LessonCompleted) Kind() Kind { return KindLessonCompleted }
