package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/satpocket/internal/state"
)

// ParentHandler manages the parent-mode PIN. Parent mode gates chore
// creation and editing in the UI; it is a convenience, not a security
// boundary.
type ParentHandler struct {
	store *state.Store
}

func NewParentHandler(store *state.Store) *ParentHandler {
	return &ParentHandler{store: store}
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (h *ParentHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.store.SetParentPIN(req.PIN); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// VerifyPIN checks the PIN and, when it matches, switches parent mode on.
func (h *ParentHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !h.store.VerifyParentPIN(req.PIN) {
		writeError(w, http.StatusUnauthorized, "incorrect PIN")
		return
	}
	h.store.SetParentMode(true)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ExitParentMode switches parent mode off. No PIN required to leave.
func (h *ParentHandler) ExitParentMode(w http.ResponseWriter, r *http.Request) {
	h.store.SetParentMode(false)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
