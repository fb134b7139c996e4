package handler

import (
	"io"
	"net/http"

	"github.com/dukerupert/satpocket/internal/state"
)

// maxImportSize bounds an import document to 10 MB.
const maxImportSize = 10 << 20

// DataHandler serves full-state reads and the snapshot
// export/import/reset operations.
type DataHandler struct {
	store *state.Store
}

func NewDataHandler(store *state.Store) *DataHandler {
	return &DataHandler{store: store}
}

func (h *DataHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.State())
}

func (h *DataHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Transactions())
}

func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.ExportData()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="satpocket-backup.json"`)
	io.WriteString(w, doc)
}

func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}

	if !h.store.ImportData(string(body)) {
		writeError(w, http.StatusBadRequest, "invalid import document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	writeJSON(w, http.StatusOK, h.store.State())
}

func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
