package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
)

// Schema mirrors the shape of the published nba.db file.
const Schema = `
CREATE TABLE players (
	player_id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	position TEXT,
	shoots TEXT,
	height_in INTEGER,
	weight_lb INTEGER,
	birth_date TEXT,
	draft_year INTEGER,
	draft_round INTEGER,
	draft_pick INTEGER,
	draft_team TEXT,
	from_year INTEGER,
	to_year INTEGER
);
CREATE TABLE teams (
	team_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	city TEXT NOT NULL
);
CREATE TABLE player_season_stats (
	player_id TEXT NOT NULL,
	season TEXT NOT NULL,
	team_id TEXT NOT NULL,
	games_played INTEGER NOT NULL,
	mpg REAL NOT NULL,
	ppg REAL NOT NULL,
	rpg REAL NOT NULL,
	apg REAL NOT NULL,
	PRIMARY KEY (player_id, season)
);
CREATE TABLE team_season_stats (
	team_id TEXT NOT NULL,
	season TEXT NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	ppg REAL NOT NULL,
	opp_ppg REAL NOT NULL,
	PRIMARY KEY (team_id, season)
);
CREATE TABLE games (
	game_id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	season TEXT NOT NULL,
	home_team_id TEXT NOT NULL,
	away_team_id TEXT NOT NULL,
	home_pts INTEGER,
	away_pts INTEGER
);
`

var seedStatements = []string{
	`INSERT INTO teams VALUES ('LAL', 'Los Angeles Lakers', 'LAL', 'Los Angeles')`,
	`INSERT INTO teams VALUES ('CLE', 'Cleveland Cavaliers', 'CLE', 'Cleveland')`,
	`INSERT INTO players (player_id, full_name, position, shoots, draft_year, draft_round, draft_pick, draft_team, from_year, to_year)
	 VALUES ('jamesle01', 'LeBron James', 'F', 'Right', 2003, 1, 1, 'Cleveland Cavaliers', 2003, 2025)`,
	`INSERT INTO players (player_id, full_name, position, shoots, draft_year, draft_round, draft_pick, draft_team, from_year, to_year)
	 VALUES ('bryanko01', 'Kobe Bryant', 'G', 'Right', 1996, 1, 13, 'Charlotte Hornets', 1996, 2016)`,
	`INSERT INTO players (player_id, full_name, position, shoots)
	 VALUES ('udokaim01', 'Ime Udoka', 'F', 'Right')`,
	`INSERT INTO player_season_stats VALUES ('jamesle01', '2003-04', 'CLE', 79, 39.5, 20.9, 5.5, 5.9)`,
	`INSERT INTO player_season_stats VALUES ('jamesle01', '2004-05', 'CLE', 80, 42.4, 27.2, 7.4, 7.2)`,
	`INSERT INTO team_season_stats VALUES ('LAL', '2000-01', 56, 26, 100.6, 97.2)`,
	`INSERT INTO games VALUES ('200112250LAL', '2001-12-25', '2001-02', 'LAL', 'CLE', 101, 94)`,
	`INSERT INTO games (game_id, date, season, home_team_id, away_team_id)
	 VALUES ('202506150LAL', '2025-06-15', '2024-25', 'LAL', 'CLE')`,
}

// NewTestDB creates a seeded SQLite file in a temp dir and opens it with
// the given mode. The handle is closed on test cleanup.
func NewTestDB(t *testing.T, mode db.Mode) *db.Handle {
	t.Helper()
	handle, _ := NewTestDBAt(t, mode)
	return handle
}

// NewTestDBAt also returns the file path, for tests that replace the
// database on disk.
func NewTestDBAt(t *testing.T, mode db.Mode) (*db.Handle, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nba.db")
	SeedFile(t, path)

	handle, err := db.Open(context.Background(), path, mode)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })
	return handle, path
}

// SeedFile creates (or replaces) a seeded database file at path.
func SeedFile(t *testing.T, path string) {
	t.Helper()

	_ = os.Remove(path)
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=rwc")
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, stmt := range seedStatements {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("seed row: %v", err)
		}
	}
}
