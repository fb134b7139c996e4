package handler

import (
	"net/http"

	"github.com/dukerupert/satpocket/internal/lesson"
	"github.com/dukerupert/satpocket/internal/state"
)

type LessonHandler struct {
	store *state.Store
}

func NewLessonHandler(store *state.Store) *LessonHandler {
	return &LessonHandler{store: store}
}

type lessonView struct {
	lesson.Lesson
	Completed bool `json:"completed"`
}

func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	done := make(map[string]bool)
	for _, id := range h.store.CompletedLessons() {
		done[id] = true
	}

	lessons := lesson.Lessons()
	out := make([]lessonView, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, lessonView{Lesson: l, Completed: done[l.ID]})
	}
	writeJSON(w, http.StatusOK, out)
}

// Complete marks a lesson as completed, crediting its reward on first
// completion. Re-completing is a no-op.
func (h *LessonHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if lesson.ByID(id) == nil {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}

	h.store.CompleteLesson(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"completed": true,
	})
}
