package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/satpocket/internal/model"
	"github.com/dukerupert/satpocket/internal/state"
	"github.com/dukerupert/satpocket/internal/validate"
)

type ChoreHandler struct {
	store *state.Store
}

func NewChoreHandler(store *state.Store) *ChoreHandler {
	return &ChoreHandler{store: store}
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("status") {
	case "pending":
		writeJSON(w, http.StatusOK, h.store.PendingChores())
	case "completed":
		writeJSON(w, http.StatusOK, h.store.CompletedChores())
	default:
		writeJSON(w, http.StatusOK, h.store.Chores())
	}
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req state.ChoreData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validate.ChoreTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Reward(req.Reward); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category == "" {
		req.Category = model.CategoryOther
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyMedium
	}
	if req.CreatedBy == "" {
		req.CreatedBy = "parent"
	}

	chore := h.store.AddChore(req)
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.exists(id) {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}

	var patch state.ChorePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if err := validate.ChoreTitle(trimmed); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Title = &trimmed
	}
	if patch.Reward != nil {
		if err := validate.Reward(*patch.Reward); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	h.store.UpdateChore(id, patch)
	writeJSON(w, http.StatusOK, h.find(id))
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.exists(id) {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}

	h.store.DeleteChore(id)
	w.WriteHeader(http.StatusNoContent)
}

// Complete transitions a chore to completed. Completing an
// already-completed chore is a no-op and still returns 200 so retried
// requests are harmless.
func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.exists(id) {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}

	h.store.CompleteChore(id)
	writeJSON(w, http.StatusOK, h.find(id))
}

func (h *ChoreHandler) exists(id string) bool {
	return h.find(id) != nil
}

func (h *ChoreHandler) find(id string) *model.Chore {
	for _, c := range h.store.Chores() {
		if c.ID == id {
			return &c
		}
	}
	return nil
}
