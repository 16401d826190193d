package teams

import (
	"context"

	domainteams "github.com/kschroeder20/nba-database-2000-2025/internal/domain/teams"
)

// Store defines the contract for retrieving teams.
type Store interface {
	ListTeams(ctx context.Context) ([]domainteams.Team, error)
	GetTeam(ctx context.Context, id string) (domainteams.Team, bool, error)
	TeamSeasons(ctx context.Context, id string) ([]domainteams.SeasonLine, error)
}

// Service coordinates team operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Teams returns all teams.
func (s *Service) Teams(ctx context.Context) ([]domainteams.Team, error) {
	return s.store.ListTeams(ctx)
}

// TeamByID returns a single team if present.
func (s *Service) TeamByID(ctx context.Context, id string) (domainteams.Team, bool, error) {
	return s.store.GetTeam(ctx, id)
}

// Seasons returns a team's season stat lines.
func (s *Service) Seasons(ctx context.Context, id string) ([]domainteams.SeasonLine, error) {
	return s.store.TeamSeasons(ctx, id)
}
