package handler

import (
	"net/http"
	"time"

	"github.com/dukerupert/satpocket/internal/achievement"
	"github.com/dukerupert/satpocket/internal/state"
)

type AchievementHandler struct {
	store *state.Store
}

func NewAchievementHandler(store *state.Store) *AchievementHandler {
	return &AchievementHandler{store: store}
}

// List returns every achievement definition annotated with unlock
// state and current progress.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	all := achievement.AllWithProgress(
		h.store.User(),
		h.store.Chores(),
		h.store.Transactions(),
		len(h.store.CompletedLessons()),
		h.store.Achievements(),
		time.Now(),
	)
	writeJSON(w, http.StatusOK, all)
}
