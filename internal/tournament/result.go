package tournament

import (
	"time"

	"github.com/google/uuid"
)

// Result records the outcome of one completed game. A game has at most
// one result, and a result's winner is one of the game's two teams.
type Result struct {
	ID            uuid.UUID `db:"id" json:"id"`
	GameID        uuid.UUID `db:"game_id" json:"game_id"`
	WinningTeamID uuid.UUID `db:"winning_team_id" json:"winning_team_id"`
	Score         int       `db:"score" json:"score"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
