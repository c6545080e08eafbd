// Package session keeps analysis results in memory between requests.
//
// Every uploaded or posted dataset becomes an Analysis addressed by a
// generated ID. Entries expire after a TTL measured from last access and
// a capacity bound evicts the stalest entries first, so an abandoned
// browser tab cannot pin server memory forever. Nothing is persisted;
// restarting the server forgets all datasets.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"github.com/Erenthos/excel-ui/internal/core"
)

const (
	// DefaultTTL is how long an entry survives without being read.
	DefaultTTL = 30 * time.Minute

	// DefaultCapacity bounds how many analyses the store holds at once.
	DefaultCapacity = 100

	// DefaultJanitorInterval is how often expired entries are swept.
	DefaultJanitorInterval = 1 * time.Minute
)

// ErrNotFound is returned when no analysis exists for the given ID.
var ErrNotFound = errors.New("dataset not found")

// Analysis is everything derived from one uploaded dataset. All fields
// are exported plain data so snapshots can be deep-copied and rendered
// without reaching back into the engine.
type Analysis struct {
	ID        string              `json:"id"`
	FileName  string              `json:"fileName"`
	CreatedAt time.Time           `json:"createdAt"`
	Columns   []string            `json:"columns"`
	Schema    []core.ColumnSchema `json:"schema"`
	Summary   core.Summary        `json:"summary"`
	Chart     *core.ChartSeries   `json:"chart"`
	Rows      []map[string]any    `json:"rows"`
}

// Info is the listing view of a stored analysis, without row data.
type Info struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	TotalRows int       `json:"totalRows"`
	Columns   int       `json:"columns"`
}

type entry struct {
	analysis   *Analysis
	lastAccess time.Time
}

// Store is a TTL- and capacity-bounded in-memory map of analyses.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl      time.Duration
	capacity int
}

// NewStore creates a store. Non-positive arguments fall back to the
// package defaults.
func NewStore(ttl time.Duration, capacity int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make(map[string]*entry),
		ttl:      ttl,
		capacity: capacity,
	}
}

// Put stores an analysis under a fresh ID and returns that ID. When the
// store is full, the least recently read entries are evicted to make
// room.
func (s *Store) Put(a *Analysis) string {
	id := uuid.New().String()
	a.ID = id
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[id] = &entry{analysis: a, lastAccess: time.Now()}
	return id
}

// Snapshot returns a deep copy of the stored analysis and refreshes its
// TTL. Callers may mutate the copy freely; the stored original is never
// exposed.
func (s *Store) Snapshot(id string) (*Analysis, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok {
		e.lastAccess = time.Now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var out Analysis
	if err := deepcopy.Copy(&out, e.analysis); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an analysis. It reports whether the ID existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// List returns listing info for all stored analyses, newest first.
func (s *Store) List() []Info {
	s.mu.RLock()
	infos := make([]Info, 0, len(s.entries))
	for _, e := range s.entries {
		a := e.analysis
		infos = append(infos, Info{
			ID:        a.ID,
			FileName:  a.FileName,
			CreatedAt: a.CreatedAt,
			ExpiresAt: e.lastAccess.Add(s.ttl),
			TotalRows: len(a.Rows),
			Columns:   len(a.Columns),
		})
	}
	s.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos
}

// Len returns the number of stored analyses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// PruneExpired removes entries whose TTL has lapsed as of now and
// returns how many were removed.
func (s *Store) PruneExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastAccess) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired entries every interval until the context
// is cancelled. Run it in its own goroutine.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	slog.Info("session janitor started", "interval", interval, "ttl", s.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			if n := s.PruneExpired(time.Now()); n > 0 {
				slog.Info("expired sessions pruned", "count", n, "remaining", s.Len())
			}
		}
	}
}

// evictOldestLocked removes the entry with the oldest last access.
// Callers must hold the write lock.
func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.entries {
		if oldestID == "" || e.lastAccess.Before(oldest) {
			oldestID = id
			oldest = e.lastAccess
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
		slog.Debug("session evicted for capacity", "id", oldestID)
	}
}
