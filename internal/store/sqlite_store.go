package store

import (
	"context"
	"database/sql"
	"errors"

	domaingames "github.com/kschroeder20/nba-database-2000-2025/internal/domain/games"
	domainplayers "github.com/kschroeder20/nba-database-2000-2025/internal/domain/players"
	domainteams "github.com/kschroeder20/nba-database-2000-2025/internal/domain/teams"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
)

// SQLiteStore serves typed lookups for the known tables. The generic table
// browser handles everything else; these queries exist for the stable,
// documented endpoints.
type SQLiteStore struct {
	q db.Queryer
}

// NewSQLiteStore constructs a store over the given queryer.
func NewSQLiteStore(q db.Queryer) *SQLiteStore {
	return &SQLiteStore{q: q}
}

const playerColumns = `player_id, full_name, position, shoots, height_in, weight_lb, birth_date,
	draft_year, draft_round, draft_pick, draft_team, from_year, to_year`

// GetPlayer returns a player by id.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (domainplayers.Player, bool, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE player_id = ?`, id)

	var p domainplayers.Player
	err := row.Scan(&p.ID, &p.FullName, &p.Position, &p.Shoots, &p.HeightIn, &p.WeightLb, &p.BirthDate,
		&p.DraftYear, &p.DraftRound, &p.DraftPick, &p.DraftTeam, &p.FromYear, &p.ToYear)
	if errors.Is(err, sql.ErrNoRows) {
		return domainplayers.Player{}, false, nil
	}
	if err != nil {
		return domainplayers.Player{}, false, err
	}
	return p, true, nil
}

// PlayerSeasons returns a player's season stat lines, oldest first.
func (s *SQLiteStore) PlayerSeasons(ctx context.Context, id string) ([]domainplayers.SeasonLine, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT player_id, season, team_id, games_played, mpg, ppg, rpg, apg
		 FROM player_season_stats WHERE player_id = ? ORDER BY season`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domainplayers.SeasonLine
	for rows.Next() {
		var l domainplayers.SeasonLine
		if err := rows.Scan(&l.PlayerID, &l.Season, &l.TeamID, &l.GamesPlayed, &l.MinutesPG, &l.PointsPerGame, &l.ReboundsPG, &l.AssistsPG); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListTeams returns all teams in id order.
func (s *SQLiteStore) ListTeams(ctx context.Context) ([]domainteams.Team, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT team_id, name, abbreviation, city FROM teams ORDER BY team_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domainteams.Team
	for rows.Next() {
		var t domainteams.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.City); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam returns a team by id.
func (s *SQLiteStore) GetTeam(ctx context.Context, id string) (domainteams.Team, bool, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT team_id, name, abbreviation, city FROM teams WHERE team_id = ?`, id)

	var t domainteams.Team
	err := row.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.City)
	if errors.Is(err, sql.ErrNoRows) {
		return domainteams.Team{}, false, nil
	}
	if err != nil {
		return domainteams.Team{}, false, err
	}
	return t, true, nil
}

// TeamSeasons returns a team's season stat lines, oldest first.
func (s *SQLiteStore) TeamSeasons(ctx context.Context, id string) ([]domainteams.SeasonLine, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT team_id, season, wins, losses, ppg, opp_ppg
		 FROM team_season_stats WHERE team_id = ? ORDER BY season`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domainteams.SeasonLine
	for rows.Next() {
		var l domainteams.SeasonLine
		if err := rows.Scan(&l.TeamID, &l.Season, &l.Wins, &l.Losses, &l.PointsPerGame, &l.OppPPG); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetGame returns a game by id.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (domaingames.Game, bool, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT game_id, date, season, home_team_id, away_team_id, home_pts, away_pts
		 FROM games WHERE game_id = ?`, id)

	var g domaingames.Game
	err := row.Scan(&g.ID, &g.Date, &g.Season, &g.HomeTeamID, &g.AwayTeamID, &g.HomePoints, &g.AwayPoints)
	if errors.Is(err, sql.ErrNoRows) {
		return domaingames.Game{}, false, nil
	}
	if err != nil {
		return domaingames.Game{}, false, err
	}
	return g, true, nil
}
