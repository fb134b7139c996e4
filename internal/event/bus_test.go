package event

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dukerupert/satpocket/internal/model"
)

func testBus() *Bus {
	return NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmitInSubscriptionOrder(t *testing.T) {
	bus := testBus()

	var order []int
	bus.Subscribe(KindChoreAdded, func(Event) { order = append(order, 1) })
	bus.Subscribe(KindChoreAdded, func(Event) { order = append(order, 2) })
	bus.Subscribe(KindChoreAdded, func(Event) { order = append(order, 3) })

	bus.Emit(ChoreAdded{})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("listeners ran in order %v, want [1 2 3]", order)
	}
}

func TestEmitOnlyMatchingKind(t *testing.T) {
	bus := testBus()

	called := false
	bus.Subscribe(KindChoreDeleted, func(Event) { called = true })

	bus.Emit(ChoreAdded{})
	if called {
		t.Error("listener for chore:deleted ran on chore:added")
	}
}

func TestPayloadDelivered(t *testing.T) {
	bus := testBus()

	var got model.Chore
	bus.Subscribe(KindChoreCompleted, func(e Event) {
		got = e.(ChoreCompleted).Chore
	})

	bus.Emit(ChoreCompleted{Chore: model.Chore{ID: "c1", Title: "Dishes"}})

	if got.ID != "c1" || got.Title != "Dishes" {
		t.Errorf("payload = %+v, want c1/Dishes", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := testBus()

	var calls []string
	sub := bus.Subscribe(KindUserUpdated, func(Event) { calls = append(calls, "a") })
	bus.Subscribe(KindUserUpdated, func(Event) { calls = append(calls, "b") })

	bus.Unsubscribe(sub)
	bus.Emit(UserUpdated{})

	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("calls = %v, want [b]", calls)
	}

	// Unsubscribing again is a no-op
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil)
}

func TestListenerPanicIsolated(t *testing.T) {
	bus := testBus()

	ran := false
	bus.Subscribe(KindLevelUp, func(Event) { panic("listener bug") })
	bus.Subscribe(KindLevelUp, func(Event) { ran = true })

	bus.Emit(LevelUp{Level: 2})

	if !ran {
		t.Error("panicking listener prevented the next listener from running")
	}
}

func TestKindNames(t *testing.T) {
	cases := map[Kind]string{
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
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
