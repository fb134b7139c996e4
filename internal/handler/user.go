package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/satpocket/internal/state"
	"github.com/dukerupert/satpocket/internal/validate"
)

type UserHandler struct {
	store *state.Store
}

func NewUserHandler(store *state.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.User())
}

func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch state.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if err := validate.UserName(trimmed); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Name = &trimmed
	}

	h.store.SetUser(patch)
	writeJSON(w, http.StatusOK, h.store.User())
}
