package players

import (
	"context"

	domainplayers "github.com/kschroeder20/nba-database-2000-2025/internal/domain/players"
)

// Store defines the contract for retrieving players.
type Store interface {
	GetPlayer(ctx context.Context, id string) (domainplayers.Player, bool, error)
	PlayerSeasons(ctx context.Context, id string) ([]domainplayers.SeasonLine, error)
}

// Service coordinates player operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(ctx context.Context, id string) (domainplayers.Player, bool, error) {
	return s.store.GetPlayer(ctx, id)
}

// Seasons returns a player's season stat lines.
func (s *Service) Seasons(ctx context.Context, id string) ([]domainplayers.SeasonLine, error) {
	return s.store.PlayerSeasons(ctx, id)
}
