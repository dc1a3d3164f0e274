package store

import (
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out monotonically increasing sequence numbers
// shared across all event tables. The counter survives restarts by
// persisting its high-water mark in the global_sequence table.
type sequenceCounter struct {
	mu   sync.Mutex
	db   *sql.DB
	next int64
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		value INTEGER NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO global_sequence (id, value) VALUES (1, 0)`); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	var value int64
	if err := db.QueryRow(`SELECT value FROM global_sequence WHERE id = 1`).Scan(&value); err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	return &sequenceCounter{db: db, next: value + 1}, nil
}

// Next returns the next sequence number and persists the new high-water mark.
func (c *sequenceCounter) Next() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq := c.next
	if _, err := c.db.Exec(`UPDATE global_sequence SET value = ? WHERE id = 1`, seq); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	c.next++
	return seq, nil
}

// eventRepo implements EventRepo over raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}
