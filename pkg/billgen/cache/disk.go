// Package cache provides a memory+disk cache for parsed bill data.
package cache

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	// SQLite driver for the disk tier.
	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	expires_at INTEGER NOT NULL
)`

// diskRow is a pending write to the disk tier.
type diskRow struct {
	key       string
	payload   []byte
	expiresAt int64
}

// DiskStore is the SQLite-backed cache tier. Writes are buffered and
// flushed in a single transaction once the buffer fills.
type DiskStore struct {
	mu        sync.Mutex
	db        *sql.DB
	pending   []diskRow
	batchSize int
}

// OpenDiskStore opens (or creates) the disk tier at path.
func OpenDiskStore(path string) (*DiskStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &DiskStore{
		db:        db,
		batchSize: 64,
	}, nil
}

// Put buffers an entry for the disk tier.
func (s *DiskStore) Put(key string, payload []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, diskRow{
		key:       key,
		payload:   payload,
		expiresAt: expiresAt.Unix(),
	})
	if len(s.pending) >= s.batchSize {
		return s.flushLocked()
	}
	return nil
}

// Get returns the payload for key, or ok=false when absent or expired.
// Pending writes are visible without a flush.
func (s *DiskStore) Get(key string, now time.Time) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.pending) - 1; i >= 0; i-- {
		if s.pending[i].key == key {
			if s.pending[i].expiresAt < now.Unix() {
				return nil, false, nil
			}
			return s.pending[i].payload, true, nil
		}
	}

	var payload []byte
	var expiresAt int64
	err := s.db.QueryRow(
		"SELECT payload, expires_at FROM cache_entries WHERE key = ?", key,
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	if expiresAt < now.Unix() {
		return nil, false, nil
	}
	return payload, true, nil
}

// Flush writes all pending entries to the database.
func (s *DiskStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *DiskStore) flushLocked() error {
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache flush: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO cache_entries (key, payload, expires_at) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing cache flush: %w", err)
	}
	defer stmt.Close()

	for _, row := range s.pending {
		if _, err := stmt.Exec(row.key, row.payload, row.expiresAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("writing cache entry %q: %w", row.key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache flush: %w", err)
	}

	s.pending = s.pending[:0]
	return nil
}

// PurgeExpired deletes entries that expired before now.
func (s *DiskStore) PurgeExpired(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pending[:0]
	for _, row := range s.pending {
		if row.expiresAt >= now.Unix() {
			kept = append(kept, row)
		}
	}
	s.pending = kept

	_, err := s.db.Exec("DELETE FROM cache_entries WHERE expires_at < ?", now.Unix())
	if err != nil {
		return fmt.Errorf("purging cache entries: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the database.
func (s *DiskStore) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.db.Close()
}
