package tournament

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Player1   string    `db:"player_1" json:"player1"`
	Player2   string    `db:"player_2" json:"player2"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
