package tournament

import "github.com/google/uuid"

// Standing is one row of the rankings table.
type Standing struct {
	Rank        int       `json:"rank"`
	TeamID      uuid.UUID `json:"team_id"`
	TeamName    string    `json:"team_name"`
	Players     []string  `json:"players"`
	TotalScore  int       `json:"total_score"`
	GamesPlayed int       `json:"games_played"`
	GamesWon    int       `json:"games_won"`
	GamesLost   int       `json:"games_lost"`
	WinRate     float64   `json:"win_rate"`
}
