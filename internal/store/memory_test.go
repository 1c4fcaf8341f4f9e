package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/absurdle/internal/game"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New([]string{"abc", "abd", "xyz"}, 3, "test")
	require.NoError(t, err)
	return g
}

func TestMemorySaveGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	g := newGame(t)

	require.NoError(t, m.Save(ctx, g))
	got, err := m.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.True(t, g.Candidates.Equal(got.Candidates))

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(ctx, g.ID))
	_, err = m.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	err := m.Update(ctx, g.ID, func(g *game.Game) error {
		_, err := g.ApplyGuess("abc")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Turns())

	boom := errors.New("boom")
	assert.ErrorIs(t, m.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, m.Update(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)
}

func TestMemoryUpdateSerializesOneSession(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, g.ID, func(g *game.Game) error {
				_, err := g.ApplyGuess("qqq")
				return err
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, g.Turns())
	assert.Len(t, g.Patterns, 50)
}

func TestMemoryGetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	snap, err := m.Get(ctx, g.ID)
	require.NoError(t, err)
	require.NoError(t, m.Update(ctx, g.ID, func(g *game.Game) error {
		_, err := g.ApplyGuess("abc")
		return err
	}))
	assert.Zero(t, snap.Turns())
	assert.Equal(t, 3, snap.Remaining())
	assert.Equal(t, 1, g.Turns())

	snap.Candidates.Clear()
	assert.Equal(t, 1, g.Remaining())
}

func TestMemoryGetDuringUpdates(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, g.ID, func(g *game.Game) error {
				_, err := g.ApplyGuess("qqq")
				return err
			})
		}()
		go func() {
			defer wg.Done()
			snap, err := m.Get(ctx, g.ID)
			if assert.NoError(t, err) {
				assert.Len(t, snap.Patterns, len(snap.Guesses))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, g.Turns())
}

func (m *memory) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newExpiringStore(ttl time.Duration) (*memory, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemoryStore(ttl).(*memory)
	m.now = clock.now
	return m, clock
}

func TestMemoryExpiredSessionsAreGone(t *testing.T) {
	ctx := context.Background()
	m, clock := newExpiringStore(time.Hour)

	ids := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		g := newGame(t)
		require.NoError(t, m.Save(ctx, g))
		ids = append(ids, g.ID)
	}

	clock.t = clock.t.Add(59 * time.Minute)
	_, err := m.Get(ctx, ids[0])
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Minute)
	for _, id := range ids {
		_, err := m.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, m.Update(ctx, id, func(*game.Game) error { return nil }), ErrNotFound)
	}

	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Zero(t, m.size())
}

func TestMemorySweepKeepsLiveSessions(t *testing.T) {
	ctx := context.Background()
	m, clock := newExpiringStore(time.Hour)

	old := newGame(t)
	require.NoError(t, m.Save(ctx, old))
	clock.t = clock.t.Add(30 * time.Minute)
	fresh := newGame(t)
	require.NoError(t, m.Save(ctx, fresh))

	clock.t = clock.t.Add(45 * time.Minute)
	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = m.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemorySaveRestartsLifetime(t *testing.T) {
	ctx := context.Background()
	m, clock := newExpiringStore(time.Hour)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	clock.t = clock.t.Add(50 * time.Minute)
	require.NoError(t, m.Save(ctx, g))
	clock.t = clock.t.Add(50 * time.Minute)

	_, err := m.Get(ctx, g.ID)
	assert.NoError(t, err)
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	m, clock := newExpiringStore(0)
	g := newGame(t)
	require.NoError(t, m.Save(ctx, g))

	clock.t = clock.t.Add(24 * 365 * time.Hour)
	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = m.Get(ctx, g.ID)
	assert.NoError(t, err)
}

func TestJanitorSweepsUntilCancelled(t *testing.T) {
	m := NewMemoryStore(time.Millisecond)
	require.NoError(t, m.Save(context.Background(), newGame(t)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Janitor(ctx, m, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool {
		return m.(*memory).size() == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
