package tournament

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameCompleted  GameStatus = "completed"
)

func ValidGameStatus(s GameStatus) bool {
	switch s {
	case GameScheduled, GameInProgress, GameCompleted:
		return true
	}
	return false
}

// Game references its two teams in canonical order: Team1ID sorts
// before Team2ID, so an unordered matchup is stored exactly one way.
type Game struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Team1ID uuid.UUID `db:"team_1_id" json:"team1_id"`
	Team2ID uuid.UUID `db:"team_2_id" json:"team2_id"`

	Status GameStatus `db:"status" json:"status"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
}

func (g *Game) HasTeam(teamID uuid.UUID) bool {
	return g.Team1ID == teamID || g.Team2ID == teamID
}

func (g *Game) Matchup() Matchup {
	return NewMatchup(g.Team1ID, g.Team2ID)
}
