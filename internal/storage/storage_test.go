package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/dukerupert/satpocket/internal/database"
	"github.com/dukerupert/satpocket/internal/logging"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, "satoshi_", logging.New(io.Discard, "error"))
}

func TestAvailable(t *testing.T) {
	s := setupTestStore(t)
	if !s.Available() {
		t.Fatal("expected store to be available")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if !s.Save("user", payload{Name: "Satoshi", Count: 3}) {
		t.Fatal("save failed")
	}

	var got payload
	if !s.Load("user", &got) {
		t.Fatal("load failed")
	}
	if got.Name != "Satoshi" || got.Count != 3 {
		t.Errorf("loaded %+v, want {Satoshi 3}", got)
	}
}

func TestLoadAbsentKey(t *testing.T) {
	s := setupTestStore(t)

	var got map[string]any
	if s.Load("nonexistent", &got) {
		t.Fatal("expected load of absent key to return false")
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := setupTestStore(t)

	s.Save("key", "first")
	s.Save("key", "second")

	var got string
	if !s.Load("key", &got) {
		t.Fatal("load failed")
	}
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestSaveUnmarshalableValue(t *testing.T) {
	s := setupTestStore(t)

	if s.Save("bad", make(chan int)) {
		t.Fatal("expected save of unmarshalable value to return false")
	}
}

func TestRemove(t *testing.T) {
	s := setupTestStore(t)

	s.Save("key", "value")
	s.Remove("key")

	var got string
	if s.Load("key", &got) {
		t.Fatal("expected key to be removed")
	}

	// Removing again is not an error
	s.Remove("key")
}

func TestClearOnlyPrefixedKeys(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logging.New(io.Discard, "error")
	mine := New(db, "satoshi_", logger)
	other := New(db, "other_", logger)

	mine.Save("user", "a")
	other.Save("user", "b")

	mine.Clear()

	var got string
	if mine.Load("user", &got) {
		t.Fatal("expected prefixed key to be cleared")
	}
	if !other.Load("user", &got) || got != "b" {
		t.Fatalf("expected foreign key to survive clear, got %q", got)
	}
}

func TestSaveMany(t *testing.T) {
	s := setupTestStore(t)

	ok := s.SaveMany(map[string]any{
		"user":   map[string]string{"name": "kid"},
		"chores": []string{"dishes"},
	})
	if !ok {
		t.Fatal("save many failed")
	}

	var user map[string]string
	if !s.Load("user", &user) || user["name"] != "kid" {
		t.Errorf("user = %v, want name=kid", user)
	}
	var chores []string
	if !s.Load("chores", &chores) || len(chores) != 1 {
		t.Errorf("chores = %v, want one entry", chores)
	}
}

func TestSaveManyAtomic(t *testing.T) {
	s := setupTestStore(t)

	ok := s.SaveMany(map[string]any{
		"aaa_good": "value",
		"bad":      make(chan int),
	})
	if ok {
		t.Fatal("expected batch with unmarshalable value to fail")
	}

	// Nothing from the failed batch should be on disk.
	var got string
	if s.Load("aaa_good", &got) {
		t.Fatal("expected failed batch to write nothing")
	}
}

func TestExportAll(t *testing.T) {
	s := setupTestStore(t)

	s.Save("user", map[string]string{"name": "kid"})
	s.Save("lessons", []string{"lesson-1"})

	doc, err := s.ExportAll()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, want := range []string{`"user"`, `"lessons"`, `"lesson-1"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("export missing %s:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "satoshi_") {
		t.Errorf("export keys should be un-prefixed:\n%s", doc)
	}
}

func TestImportAllRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	s.Save("user", map[string]string{"name": "kid"})
	doc, err := s.ExportAll()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	s.Clear()
	if !s.ImportAll(doc) {
		t.Fatal("import failed")
	}

	var user map[string]string
	if !s.Load("user", &user) || user["name"] != "kid" {
		t.Errorf("user = %v, want name=kid", user)
	}
}

func TestImportAllMalformed(t *testing.T) {
	s := setupTestStore(t)

	s.Save("user", "original")

	if s.ImportAll("{not json") {
		t.Fatal("expected malformed import to fail")
	}

	// Parse failure must not mutate anything.
	var got string
	if !s.Load("user", &got) || got != "original" {
		t.Errorf("user = %q, want %q after failed import", got, "original")
	}
}
