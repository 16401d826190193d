package games

// Game is one row of the games table. Scores are NULL until the game has
// been played.
type Game struct {
	ID         string `json:"game_id"`
	Date       string `json:"date"`
	Season     string `json:"season"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomePoints *int64 `json:"home_pts"`
	AwayPoints *int64 `json:"away_pts"`
}
