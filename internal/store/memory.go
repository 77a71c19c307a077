// apps/go-server/internal/store/memory.go
//
// In-memory session store for Hangman games.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Each game has its own mutex; Update runs fn while holding it, so
//     concurrent requests for one game are serialized.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

var ErrNotFound = errors.New("not found")

// Store defines the session interface for games.
type Store interface {
	// Create registers a new game under g.ID.
	Create(ctx context.Context, g *game.Game) error

	// View runs fn with exclusive access to the game.
	// fn must not retain g after returning.
	View(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Update is View for callers that mutate the game.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete drops a game. Deleting a missing game is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu sync.Mutex // serializes access to g
	g  *game.Game
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry)}
}

func (m *memory) Create(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; ok {
		return errors.New("duplicate game id")
	}
	m.games[g.ID] = &entry{g: g}
	return nil
}

func (m *memory) View(ctx context.Context, id string, fn func(g *game.Game) error) error {
	return m.Update(ctx, id, fn)
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
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

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
