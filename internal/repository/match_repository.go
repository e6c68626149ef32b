package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"sync"
)

// MatchRepository stores the authoritative state of every match.
type MatchRepository interface {
	Create(ctx context.Context, id, creatorName string) error
	Join(ctx context.Context, id, playerName string) error
	FindByID(ctx context.Context, id string) (*game.Game, error)
	ApplyMove(ctx context.Context, id string, position int, symbol game.Symbol) (*game.Game, error)
}

type memoryMatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*game.Game
}

// NewMemoryMatchRepository creates a process-local MatchRepository.
func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatchRepository{
		matches: make(map[string]*game.Game),
	}
}

// Create registers a new match with its creator playing X.
func (r *memoryMatchRepository) Create(_ context.Context, id, creatorName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[id]; ok {
		return apperror.ErrGameAlreadyExists
	}

	g := game.NewGame()
	if err := g.AddPlayer(game.PlayerX, creatorName); err != nil {
		return err
	}
	r.matches[id] = g
	return nil
}

// Join seats playerName as O.
func (r *memoryMatchRepository) Join(_ context.Context, id, playerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.matches[id]
	if !ok {
		return apperror.ErrGameNotFound
	}
	return g.AddPlayer(game.PlayerO, playerName)
}

// FindByID returns a copy of the match state.
func (r *memoryMatchRepository) FindByID(_ context.Context, id string) (*game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.matches[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}
	return g.Clone(), nil
}

// ApplyMove applies a move and returns the resulting state.
func (r *memoryMatchRepository) ApplyMove(_ context.Context, id string, position int, symbol game.Symbol) (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.matches[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}
	if err := g.Move(position, symbol); err != nil {
		return nil, err
	}
	return g.Clone(), nil
}
