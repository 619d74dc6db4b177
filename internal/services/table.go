package services

import (
	"sync"
	"time"

	"github.com/abrezinsky/mastersboard/internal/render"
)

// Table is the server-side body of one leaderboard table. Its contents are
// only ever swapped out as a whole.
type Table struct {
	id       string
	mu       sync.RWMutex
	rows     []render.Row
	loadedAt time.Time
}

// Snapshot is a table's rows and load time as of one moment
type Snapshot struct {
	Rows     []render.Row
	LoadedAt time.Time
}

// NewTable creates an empty table with the given element id
func NewTable(id string) *Table {
	return &Table{id: id, rows: []render.Row{}}
}

// ID returns the element id the table is rendered under
func (t *Table) ID() string {
	return t.id
}

// Replace discards the current rows and installs the given ones. It returns
// what was installed, unaffected by later replacements.
func (t *Table) Replace(rows []render.Row) Snapshot {
	if rows == nil {
		rows = []render.Row{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.loadedAt = time.Now()
	return t.snapshotLocked()
}

// Snapshot returns the current rows and load time together
func (t *Table) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

func (t *Table) snapshotLocked() Snapshot {
	out := make([]render.Row, len(t.rows))
	copy(out, t.rows)
	return Snapshot{Rows: out, LoadedAt: t.loadedAt}
}
