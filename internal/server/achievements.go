package server

import (
	"time"

	"github.com/dukerupert/satpocket/internal/achievement"
	"github.com/dukerupert/satpocket/internal/event"
	"github.com/dukerupert/satpocket/internal/state"
)

// WatchAchievements subscribes an unlock checker to every event that
// can make new achievements eligible. Listeners run synchronously after
// the triggering mutation has committed, so the check always sees the
// post-mutation snapshot.
func WatchAchievements(store *state.Store) {
	check := func(event.Event) {
		newlyEligible := achievement.CheckUnlocks(
			store.User(),
			store.Chores(),
			store.Transactions(),
			len(store.CompletedLessons()),
			store.Achievements(),
			time.Now(),
		)
		for _, id := range newlyEligible {
			store.UnlockAchievement(id)
		}
	}

	store.Bus().Subscribe(event.KindChoreCompleted, check)
	store.Bus().Subscribe(event.KindLevelUp, check)
	store.Bus().Subscribe(event.KindLessonCompleted, check)
}
