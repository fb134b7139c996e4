package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/satpocket/internal/database"
	"github.com/dukerupert/satpocket/internal/logging"
	"github.com/dukerupert/satpocket/internal/model"
	"github.com/dukerupert/satpocket/internal/state"
	"github.com/dukerupert/satpocket/internal/storage"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logging.New(io.Discard, "error")
	store := state.New(storage.New(db, "satoshi_", logger), logger)
	srv := New(store, logger)
	store.Init()
	return srv.Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	h := setupServer(t)
	rec := do(t, h, "GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestChoreLifecycle(t *testing.T) {
	h := setupServer(t)

	rec := do(t, h, "POST", "/api/chores", `{"title":"Dishes","reward":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}
	created := decode[model.Chore](t, rec)
	if created.Category != model.CategoryOther || created.Difficulty != model.DifficultyMedium {
		t.Errorf("defaults not applied: %+v", created)
	}

	rec = do(t, h, "POST", "/api/chores/"+created.ID+"/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, want 200: %s", rec.Code, rec.Body)
	}
	completed := decode[model.Chore](t, rec)
	if completed.Status != model.ChoreStatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Balance credited
	rec = do(t, h, "GET", "/api/user", "")
	user := decode[model.User](t, rec)
	if user.Balance != 100 || user.XP != 100 {
		t.Errorf("balance/xp = %d/%d, want 100/100", user.Balance, user.XP)
	}

	// Completing the first chore unlocks first-chore via the watcher.
	rec = do(t, h, "GET", "/api/achievements", "")
	type annotated struct {
		ID       string `json:"id"`
		Unlocked bool   `json:"unlocked"`
	}
	all := decode[[]annotated](t, rec)
	found := false
	for _, a := range all {
		if a.ID == "first-chore" && a.Unlocked {
			found = true
		}
	}
	if !found {
		t.Error("first-chore not unlocked after completing a chore")
	}

	// Pending filter excludes the completed chore.
	rec = do(t, h, "GET", "/api/chores?status=pending", "")
	if pending := decode[[]model.Chore](t, rec); len(pending) != 0 {
		t.Errorf("pending = %v, want empty", pending)
	}
}

func TestCreateChoreValidation(t *testing.T) {
	h := setupServer(t)

	cases := []string{
		`{"title":"","reward":100}`,
		`{"title":"x","reward":0}`,
		`{"title":"x","reward":2000000}`,
		`not json`,
	}
	for _, body := range cases {
		if rec := do(t, h, "POST", "/api/chores", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestCompleteUnknownChore(t *testing.T) {
	h := setupServer(t)
	if rec := do(t, h, "POST", "/api/chores/nope/complete", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestParentPINFlow(t *testing.T) {
	h := setupServer(t)

	if rec := do(t, h, "POST", "/api/parent/pin", `{"pin":"12"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("short pin status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, "POST", "/api/parent/pin", `{"pin":"1234"}`); rec.Code != http.StatusOK {
		t.Fatalf("set pin status = %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, h, "POST", "/api/parent/verify", `{"pin":"9999"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong pin status = %d, want 401", rec.Code)
	}

	rec := do(t, h, "POST", "/api/parent/verify", `{"pin":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d: %s", rec.Code, rec.Body)
	}
	rec = do(t, h, "GET", "/api/user", "")
	if user := decode[model.User](t, rec); !user.ParentMode {
		t.Error("parent mode not enabled after verify")
	}

	if rec := do(t, h, "POST", "/api/parent/exit", ""); rec.Code != http.StatusOK {
		t.Fatalf("exit status = %d", rec.Code)
	}
	rec = do(t, h, "GET", "/api/user", "")
	if user := decode[model.User](t, rec); user.ParentMode {
		t.Error("parent mode still enabled after exit")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	h := setupServer(t)

	rec := do(t, h, "POST", "/api/chores", `{"title":"Dishes","reward":50}`)
	created := decode[model.Chore](t, rec)
	do(t, h, "POST", "/api/chores/"+created.ID+"/complete", "")

	rec = do(t, h, "GET", "/api/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	backup := rec.Body.String()

	if rec := do(t, h, "POST", "/api/reset", ""); rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}
	rec = do(t, h, "GET", "/api/chores", "")
	if chores := decode[[]model.Chore](t, rec); len(chores) != 0 {
		t.Fatalf("chores after reset = %v, want empty", chores)
	}

	if rec := do(t, h, "POST", "/api/import", backup); rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body)
	}
	rec = do(t, h, "GET", "/api/chores", "")
	chores := decode[[]model.Chore](t, rec)
	if len(chores) != 1 || chores[0].ID != created.ID {
		t.Errorf("chores after import = %v, want the original chore", chores)
	}
}

func TestImportMalformed(t *testing.T) {
	h := setupServer(t)
	if rec := do(t, h, "POST", "/api/import", "{broken"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLessonComplete(t *testing.T) {
	h := setupServer(t)

	if rec := do(t, h, "GET", "/api/lessons", ""); rec.Code != http.StatusOK {
		t.Fatalf("list lessons status = %d", rec.Code)
	}

	if rec := do(t, h, "POST", "/api/lessons/lesson-1/complete", ""); rec.Code != http.StatusOK {
		t.Fatalf("complete lesson status = %d", rec.Code)
	}
	rec := do(t, h, "GET", "/api/user", "")
	if user := decode[model.User](t, rec); user.Balance != 10 {
		t.Errorf("balance = %d, want lesson bonus 10", user.Balance)
	}
}
