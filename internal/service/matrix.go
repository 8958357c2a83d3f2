package service

import (
	"context"
	"fmt"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/utils"
	"github.com/google/uuid"
)

const matchupUnplayed = "unplayed"

// MatrixCell describes the state of one potential matchup. GameID is
// set when a game exists for the pair.
type MatrixCell struct {
	GameID *uuid.UUID `json:"game_id,omitempty"`
	Status string     `json:"status"`
}

// MatchMatrix reports, for every ordered pair of distinct teams,
// whether the matchup is unplayed, in progress or completed. Diagonal
// cells are nil.
type MatchMatrix struct {
	Teams  []tournament.Team                       `json:"teams"`
	Matrix map[uuid.UUID]map[uuid.UUID]*MatrixCell `json:"matrix"`
}

// GetMatchMatrix builds the matchup grid from the same matchup index
// the scheduler uses, so the two views of "already played" cannot
// diverge.
func (s *GameService) GetMatchMatrix(ctx context.Context) (*MatchMatrix, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	completed, err := s.games.ListGamesByStatus(ctx, tournament.GameCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed games: %w", err)
	}
	inProgress, err := s.games.ListGamesByStatus(ctx, tournament.GameInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress games: %w", err)
	}

	index := tournament.BuildMatchupIndex(append(completed, inProgress...))

	matrix := make(map[uuid.UUID]map[uuid.UUID]*MatrixCell, len(teams))
	for _, team1 := range teams {
		row := make(map[uuid.UUID]*MatrixCell, len(teams))
		for _, team2 := range teams {
			if team1.ID == team2.ID {
				row[team2.ID] = nil
				continue
			}
			if game, ok := index[tournament.NewMatchup(team1.ID, team2.ID)]; ok {
				row[team2.ID] = &MatrixCell{
					GameID: utils.Ptr(game.ID),
					Status: string(game.Status),
				}
			} else {
				row[team2.ID] = &MatrixCell{Status: matchupUnplayed}
			}
		}
		matrix[team1.ID] = row
	}

	return &MatchMatrix{Teams: teams, Matrix: matrix}, nil
}
