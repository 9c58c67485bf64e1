package cli

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// historyListLimit bounds how many entries :history prints.
const historyListLimit = 20

const historySchema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	line       TEXT NOT NULL,
	entered_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS history_entered_at ON history(entered_at);
`

// HistoryEntry is one recorded REPL input line.
type HistoryEntry struct {
	Session   string
	Line      string
	EnteredAt time.Time
}

// History stores REPL input in a SQLite database. Every process gets
// its own session ID so interleaved sessions stay distinguishable.
type History struct {
	db      *sql.DB
	session string
}

// OpenHistory opens the history database at path, creating the file
// and schema when they do not exist yet.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing history %s: %w", path, err)
	}
	return &History{db: db, session: uuid.NewString()}, nil
}

// Session returns the identifier grouping this process's entries.
func (h *History) Session() string {
	return h.session
}

// Append records one input line.
func (h *History) Append(line string) error {
	_, err := h.db.Exec(
		"INSERT INTO history (session, line, entered_at) VALUES (?, ?, ?)",
		h.session, line, time.Now().UTC(),
	)
	return err
}

// Recent returns up to n of the most recent entries across all
// sessions, oldest first.
func (h *History) Recent(n int) ([]HistoryEntry, error) {
	rows, err := h.db.Query(
		"SELECT session, line, entered_at FROM history ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Session, &e.Line, &e.EnteredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query walks newest-first; flip into chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
