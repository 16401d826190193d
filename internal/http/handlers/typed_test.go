package handlers

import (
	"net/http"
	"testing"

	"github.com/kschroeder20/nba-database-2000-2025/internal/domain/games"
	"github.com/kschroeder20/nba-database-2000-2025/internal/domain/players"
	"github.com/kschroeder20/nba-database-2000-2025/internal/domain/teams"
	"github.com/kschroeder20/nba-database-2000-2025/internal/testutil"
)

func TestPlayerByID(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/players/jamesle01", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var player players.Player
	testutil.DecodeJSON(t, rr, &player)
	if player.FullName != "LeBron James" {
		t.Fatalf("expected LeBron James, got %q", player.FullName)
	}
	if player.DraftPick == nil || *player.DraftPick != 1 {
		t.Fatalf("expected draft pick 1, got %v", player.DraftPick)
	}
}

func TestPlayerNotFound(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/players/nosuch99", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestPlayerSeasons(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/players/jamesle01/seasons", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		PlayerID string               `json:"player_id"`
		Seasons  []players.SeasonLine `json:"seasons"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(resp.Seasons))
	}
	if resp.Seasons[0].Season != "2003-04" {
		t.Fatalf("expected seasons ordered ascending, got %q first", resp.Seasons[0].Season)
	}
}

func TestTeamList(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Teams), http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Teams []teams.Team `json:"teams"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(resp.Teams))
	}
}

func TestTeamSeasons(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Teams), http.MethodGet, "/teams/LAL/seasons", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		TeamID  string             `json:"team_id"`
		Seasons []teams.SeasonLine `json:"seasons"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Seasons) != 1 {
		t.Fatalf("expected 1 season, got %d", len(resp.Seasons))
	}
	if resp.Seasons[0].Wins != 56 {
		t.Fatalf("expected 56 wins, got %d", resp.Seasons[0].Wins)
	}
}

func TestGameByID(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Games), http.MethodGet, "/games/200112250LAL", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var game games.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.HomePoints == nil || *game.HomePoints != 101 {
		t.Fatalf("expected home points 101, got %v", game.HomePoints)
	}
}

func TestGameWithoutScore(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Games), http.MethodGet, "/games/202506150LAL", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var game games.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.HomePoints != nil || game.AwayPoints != nil {
		t.Fatal("expected unplayed game to have null scores")
	}
}

func TestParseEntityPath(t *testing.T) {
	cases := []struct {
		path    string
		prefix  string
		id      string
		seasons bool
		ok      bool
	}{
		{"/players/jamesle01", "/players/", "jamesle01", false, true},
		{"/players/jamesle01/seasons", "/players/", "jamesle01", true, true},
		{"/players/", "/players/", "", false, false},
		{"/players/a/b", "/players/", "", false, false},
		{"/teams/LAL", "/teams/", "LAL", false, true},
	}
	for _, tc := range cases {
		id, seasons, ok := parseEntityPath(tc.path, tc.prefix)
		if id != tc.id || seasons != tc.seasons || ok != tc.ok {
			t.Errorf("parseEntityPath(%q): got (%q, %v, %v), want (%q, %v, %v)",
				tc.path, id, seasons, ok, tc.id, tc.seasons, tc.ok)
		}
	}
}
