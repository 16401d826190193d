package teams

// Team is one row of the teams table.
type Team struct {
	ID           string `json:"team_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
}

// SeasonLine is one row of team_season_stats.
type SeasonLine struct {
	TeamID        string  `json:"team_id"`
	Season        string  `json:"season"`
	Wins          int64   `json:"wins"`
	Losses        int64   `json:"losses"`
	PointsPerGame float64 `json:"ppg"`
	OppPPG        float64 `json:"opp_ppg"`
}
