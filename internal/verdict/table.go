// Package verdict holds the process-wide table mapping task ids to
// their current verdict, from submission through terminal status.
package verdict

import (
	"sync"

	"judged/internal/model"
)

// Table is a concurrency-safe map of task id to model.Verdict, guarded
// by a single coarse mutex. Reads and writes are both expected to be
// cheap and short-held, so one mutex is preferable to sharding.
type Table struct {
	mu   sync.RWMutex
	byID map[string]model.Verdict
}

// New returns an empty Table.
func New() *Table {
	return &Table{byID: make(map[string]model.Verdict)}
}

// Insert stores or overwrites the verdict for id.
func (t *Table) Insert(id string, v model.Verdict) {
	t.mu.Lock()
	t.byID[id] = v
	t.mu.Unlock()
}

// Get returns the current verdict for id and whether it exists.
func (t *Table) Get(id string) (model.Verdict, bool) {
	t.mu.RLock()
	v, ok := t.byID[id]
	t.mu.RUnlock()
	return v, ok
}

// Len reports how many ids the table currently tracks, for stats
// reporting.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
