package games

import (
	"context"

	domaingames "github.com/kschroeder20/nba-database-2000-2025/internal/domain/games"
)

// Store defines the contract for retrieving games.
type Store interface {
	GetGame(ctx context.Context, id string) (domaingames.Game, bool, error)
}

// Service coordinates game operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GameByID returns a single game if present.
func (s *Service) GameByID(ctx context.Context, id string) (domaingames.Game, bool, error) {
	return s.store.GetGame(ctx, id)
}
