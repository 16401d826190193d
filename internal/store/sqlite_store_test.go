package store_test

import (
	"context"
	"testing"

	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/store"
	"github.com/kschroeder20/nba-database-2000-2025/internal/testutil"
)

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	return store.NewSQLiteStore(testutil.NewTestDB(t, db.ReadOnly))
}

func TestGetPlayer(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	player, found, err := s.GetPlayer(ctx, "jamesle01")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if !found {
		t.Fatal("expected player")
	}
	if player.FullName != "LeBron James" {
		t.Fatalf("unexpected name %s", player.FullName)
	}
	if player.DraftRound == nil || *player.DraftRound != 1 {
		t.Fatalf("expected round 1, got %v", player.DraftRound)
	}

	_, found, err = s.GetPlayer(ctx, "nobody99")
	if err != nil {
		t.Fatalf("get missing player: %v", err)
	}
	if found {
		t.Fatal("expected no player")
	}
}

func TestUndraftedPlayerHasNullDraft(t *testing.T) {
	s := newStore(t)

	player, found, err := s.GetPlayer(context.Background(), "udokaim01")
	if err != nil || !found {
		t.Fatalf("get player: %v found=%v", err, found)
	}
	if player.DraftRound != nil || player.DraftPick != nil || player.DraftYear != nil {
		t.Fatal("expected NULL draft columns for undrafted player")
	}
}

func TestPlayerSeasons(t *testing.T) {
	s := newStore(t)

	lines, err := s.PlayerSeasons(context.Background(), "jamesle01")
	if err != nil {
		t.Fatalf("seasons: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(lines))
	}
	if lines[0].Season != "2003-04" {
		t.Fatalf("expected oldest season first, got %s", lines[0].Season)
	}
}

func TestTeams(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	teams, err := s.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}

	team, found, err := s.GetTeam(ctx, "LAL")
	if err != nil || !found {
		t.Fatalf("get team: %v found=%v", err, found)
	}
	if team.Name != "Los Angeles Lakers" {
		t.Fatalf("unexpected team name %s", team.Name)
	}

	lines, err := s.TeamSeasons(ctx, "LAL")
	if err != nil {
		t.Fatalf("team seasons: %v", err)
	}
	if len(lines) != 1 || lines[0].Wins != 56 {
		t.Fatalf("unexpected season lines %+v", lines)
	}
}

func TestGetGame(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	game, found, err := s.GetGame(ctx, "200112250LAL")
	if err != nil || !found {
		t.Fatalf("get game: %v found=%v", err, found)
	}
	if game.HomePoints == nil || *game.HomePoints != 101 {
		t.Fatalf("unexpected home points %v", game.HomePoints)
	}

	// Unplayed game keeps NULL scores.
	future, found, err := s.GetGame(ctx, "202506150LAL")
	if err != nil || !found {
		t.Fatalf("get future game: %v found=%v", err, found)
	}
	if future.HomePoints != nil || future.AwayPoints != nil {
		t.Fatal("expected NULL scores for unplayed game")
	}
}
