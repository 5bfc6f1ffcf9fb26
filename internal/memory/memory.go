// Package memory tracks which headlines have been shown on the ticker
// across sessions, so a restart does not replay the same stories at full
// priority. Only URLs and timestamps are stored, never headline content.
package memory

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/tickerd/internal/logging"
)

// Memory is the persistent shown-headline record. Safe for concurrent
// use: the display loop marks, the poller reads.
type Memory struct {
	db        *sql.DB
	retention time.Duration

	mu          sync.Mutex
	lastCleanup time.Time
}

// cleanupInterval bounds how often RecentlyShown triggers expiry.
const cleanupInterval = 10 * time.Minute

// Open opens (creating if needed) the memory database at path.
// Use ":memory:" for tests. Entries older than retention are forgotten.
func Open(path string, retention time.Duration) (*Memory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory db: %w", err)
	}

	m := &Memory{db: db, retention: retention}
	if err := m.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate memory db: %w", err)
	}

	m.cleanup()
	return m, nil
}

func (m *Memory) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shown (
		url TEXT PRIMARY KEY,
		first_shown DATETIME NOT NULL,
		last_shown DATETIME NOT NULL,
		frequency INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_shown_last ON shown(last_shown);
	`
	_, err := m.db.Exec(schema)
	return err
}

// MarkShown records that a headline entered the visible ticker.
func (m *Memory) MarkShown(url string) {
	if url == "" {
		return
	}
	now := time.Now().UTC()
	_, err := m.db.Exec(`
		INSERT INTO shown (url, first_shown, last_shown, frequency)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(url) DO UPDATE SET
			last_shown = excluded.last_shown,
			frequency = frequency + 1
	`, url, now, now)
	if err != nil {
		logging.Error("failed to mark headline shown", "url", url, "error", err)
	}
}

// RecentlyShown reports whether the URL was shown within the retention
// window. Triggers periodic expiry as a side effect.
func (m *Memory) RecentlyShown(url string) bool {
	if url == "" {
		return false
	}

	m.mu.Lock()
	due := time.Since(m.lastCleanup) > cleanupInterval
	if due {
		m.lastCleanup = time.Now()
	}
	m.mu.Unlock()
	if due {
		m.cleanup()
	}

	cutoff := time.Now().UTC().Add(-m.retention)
	var n int
	err := m.db.QueryRow(
		`SELECT COUNT(1) FROM shown WHERE url = ? AND last_shown >= ?`,
		url, cutoff,
	).Scan(&n)
	if err != nil {
		logging.Error("failed to query shown memory", "error", err)
		return false
	}
	return n > 0
}

// Count returns the number of remembered headlines.
func (m *Memory) Count() int {
	var n int
	if err := m.db.QueryRow(`SELECT COUNT(1) FROM shown`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// cleanup forgets entries older than the retention window.
func (m *Memory) cleanup() {
	cutoff := time.Now().UTC().Add(-m.retention)
	res, err := m.db.Exec(`DELETE FROM shown WHERE last_shown < ?`, cutoff)
	if err != nil {
		logging.Error("failed to expire shown memory", "error", err)
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logging.Debug("expired shown headlines", "count", n)
	}
}

// Close closes the underlying database.
func (m *Memory) Close() error {
	return m.db.Close()
}
