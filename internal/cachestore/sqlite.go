// Package cachestore provides a persistent backend for linkml.Cache.
package cachestore

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists compiled-program cache entries across process
// invocations: WAL mode for concurrent-friendly writes, a single table
// keyed by the cache key, an RWMutex guarding the db handle.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens a sqlite-backed store at path, initializing its
// schema if needed.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache store: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite cache schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	return err
}

// Get satisfies linkml.Cache. A missing key is not an error.
func (s *SQLiteStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRow(`SELECT value FROM cache_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set satisfies linkml.Cache, upserting the entry.
func (s *SQLiteStore) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.db.Exec(`INSERT OR REPLACE INTO cache_entries (key, value) VALUES (?, ?)`, key, value)
}

// Delete satisfies linkml.Cache. Deleting an absent key is a no-op.
func (s *SQLiteStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
