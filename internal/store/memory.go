// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Sessions are ephemeral by design: nothing survives a restart.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each session additionally has its
//     own mutex so Update on one game never blocks another.
//   - Each session expires ttl after it was saved, matching the lifetime
//     of its session token. Expired sessions read as missing and are
//     dropped by Sweep.
//   - Errors are returned for missing game IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/absurdle/internal/game"
)

// ErrNotFound is returned for unknown or expired game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the session registry used by the HTTP server.
type Store interface {
	// Save adds or replaces a game and restarts its lifetime.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a snapshot of a game. Changes to the snapshot are not
	// stored; use Update for that.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn with exclusive access to the game.
	// fn's error is returned unchanged.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete forgets a game; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops every expired game and reports how many went.
	Sweep(ctx context.Context) (int, error)
}

type entry struct {
	mu      sync.Mutex
	g       *game.Game
	expires time.Time // zero never expires; written only under memory.mu
}

func (e *entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store whose sessions live for
// ttl after each Save. A ttl <= 0 keeps sessions until deleted.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{games: make(map[string]*entry), ttl: ttl, now: time.Now}
}

func (m *memory) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[g.ID]; ok {
		e.mu.Lock()
		e.g = g
		e.expires = m.expiry()
		e.mu.Unlock()
		return nil
	}
	m.games[g.ID] = &entry{g: g, expires: m.expiry()}
	return nil
}

// live returns the entry for id unless it is missing or expired.
func (m *memory) live(id string) (*entry, bool) {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok || e.expired(now) {
		return nil, false
	}
	return e, true
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	e, ok := m.live(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.g.Clone(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	e, ok := m.live(id)
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if e.expired(now) {
			delete(m.games, id)
			n++
		}
	}
	return n, nil
}
