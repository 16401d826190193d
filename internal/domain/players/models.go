package players

// Player is one row of the players table. Draft columns are NULL for
// undrafted players, never zero.
type Player struct {
	ID         string  `json:"player_id"`
	FullName   string  `json:"full_name"`
	Position   *string `json:"position"`
	Shoots     *string `json:"shoots"`
	HeightIn   *int64  `json:"height_in"`
	WeightLb   *int64  `json:"weight_lb"`
	BirthDate  *string `json:"birth_date"`
	DraftYear  *int64  `json:"draft_year"`
	DraftRound *int64  `json:"draft_round"`
	DraftPick  *int64  `json:"draft_pick"`
	DraftTeam  *string `json:"draft_team"`
	FromYear   *int64  `json:"from_year"`
	ToYear     *int64  `json:"to_year"`
}

// SeasonLine is one row of player_season_stats.
type SeasonLine struct {
	PlayerID      string  `json:"player_id"`
	Season        string  `json:"season"`
	TeamID        string  `json:"team_id"`
	GamesPlayed   int64   `json:"games_played"`
	MinutesPG     float64 `json:"mpg"`
	PointsPerGame float64 `json:"ppg"`
	ReboundsPG    float64 `json:"rpg"`
	AssistsPG     float64 `json:"apg"`
}
