package tournament

import (
	"bytes"

	"github.com/google/uuid"
)

// Matchup is an unordered pair of team ids, normalized so that A sorts
// before B. The scheduler, manual game creation and the match matrix
// all key on the same normalized pair, so "already played" means the
// same thing everywhere.
type Matchup struct {
	A uuid.UUID
	B uuid.UUID
}

func NewMatchup(a, b uuid.UUID) Matchup {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return Matchup{A: a, B: b}
}

// MatchupIndex maps each normalized pair to the game occupying it.
type MatchupIndex map[Matchup]*Game

func BuildMatchupIndex(games []Game) MatchupIndex {
	index := make(MatchupIndex, len(games))
	for i := range games {
		index[games[i].Matchup()] = &games[i]
	}
	return index
}

// BusyTeams returns the ids of every team appearing in the given games.
// Callers pass the in_progress games to find teams that cannot be
// scheduled right now.
func BusyTeams(games []Game) map[uuid.UUID]bool {
	busy := make(map[uuid.UUID]bool, len(games)*2)
	for i := range games {
		busy[games[i].Team1ID] = true
		busy[games[i].Team2ID] = true
	}
	return busy
}
