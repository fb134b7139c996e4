// Package storage implements the durable key-value store backing the
// state container. Every slice of application state is persisted as a
// JSON document under a namespaced key in a single SQLite table.
//
// Save/Load never return errors to callers: failures are logged and
// degrade to a boolean or an absent value, so in-memory state stays
// authoritative for the rest of the session.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dukerupert/satpocket/internal/metrics"
)

// DefaultPrefix namespaces satpocket keys in the kv table.
const DefaultPrefix = "satoshi_"

const probeKey = "__storage_test__"

type Store struct {
	db     *sql.DB
	prefix string
	logger *slog.Logger
}

func New(db *sql.DB, prefix string, logger *slog.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{db: db, prefix: prefix, logger: logger}
}

// Available reports whether the store can be written to. It performs a
// real write-then-delete probe rather than a ping so quota and
// permission problems surface at startup.
func (s *Store) Available() bool {
	if !s.Save(probeKey, probeKey) {
		return false
	}
	s.Remove(probeKey)
	return true
}

// Save JSON-encodes v and upserts it under the prefixed key. Returns
// false on any failure.
func (s *Store) Save(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal value", "key", key, "error", err)
		metrics.StorageWriteFailures.WithLabelValues("save").Inc()
		return false
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.prefix+key, string(data), time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("save key", "key", key, "error", err)
		metrics.StorageWriteFailures.WithLabelValues("save").Inc()
		return false
	}
	return true
}

// Load decodes the value stored under key into dst. Returns false if
// the key is absent or the stored value cannot be decoded.
func (s *Store) Load(key string, dst any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.prefix+key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.logger.Error("load key", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Error("decode value", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes the prefixed key. Missing keys are not an error.
func (s *Store) Remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, s.prefix+key); err != nil {
		s.logger.Error("remove key", "key", key, "error", err)
	}
}

// Clear deletes every key under this store's prefix, leaving foreign
// keys in the kv table untouched.
func (s *Store) Clear() {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, likePattern(s.prefix)); err != nil {
		s.logger.Error("clear keys", "prefix", s.prefix, "error", err)
	}
}

// SaveMany writes all entries in a single transaction: either every
// slice lands on disk or none does. Used by the chore completion
// workflow so user, chores, and ledger cannot diverge on disk.
func (s *Store) SaveMany(values map[string]any) bool {
	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error("begin batch save", "error", err)
		metrics.StorageWriteFailures.WithLabelValues("save_many").Inc()
		return false
	}
	defer tx.Rollback()

	// Deterministic write order keeps failures reproducible.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now().UTC()
	for _, key := range keys {
		data, err := json.Marshal(values[key])
		if err != nil {
			s.logger.Error("marshal value", "key", key, "error", err)
			metrics.StorageWriteFailures.WithLabelValues("save_many").Inc()
			return false
		}
		_, err = tx.Exec(
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			s.prefix+key, string(data), now,
		)
		if err != nil {
			s.logger.Error("batch save key", "key", key, "error", err)
			metrics.StorageWriteFailures.WithLabelValues("save_many").Inc()
			return false
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit batch save", "error", err)
		metrics.StorageWriteFailures.WithLabelValues("save_many").Inc()
		return false
	}
	return true
}

// ExportAll returns a single JSON document of every slice under this
// store's prefix, keyed by un-prefixed slice name.
func (s *Store) ExportAll() (string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`, likePattern(s.prefix))
	if err != nil {
		return "", fmt.Errorf("export keys: %w", err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return "", fmt.Errorf("scan export row: %w", err)
		}
		out[strings.TrimPrefix(key, s.prefix)] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("export rows: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(data), nil
}

// ImportAll parses a document produced by ExportAll and writes each
// top-level key back into the store. A parse failure mutates nothing;
// on success all slices are written in one transaction.
func (s *Store) ImportAll(text string) bool {
	var in map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &in); err != nil {
		s.logger.Error("parse import", "error", err)
		return false
	}

	values := make(map[string]any, len(in))
	for key, raw := range in {
		values[key] = raw
	}
	return s.SaveMany(values)
}

// likePattern escapes LIKE metacharacters in the prefix so keys such as
// "satoshi_user" only match their own namespace.
func likePattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
