package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ResultService struct {
	db      *sqlx.DB
	teams   *store.TeamStore
	games   *store.GameStore
	results *store.ResultStore
}

func NewResultService(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore, results *store.ResultStore) *ResultService {
	return &ResultService{db: db, teams: teams, games: games, results: results}
}

// ResultView is a result with its winning team resolved.
type ResultView struct {
	ID            uuid.UUID        `json:"id"`
	GameID        uuid.UUID        `json:"game_id"`
	WinningTeamID uuid.UUID        `json:"winning_team_id"`
	WinningTeam   *tournament.Team `json:"winning_team"`
	Score         int              `json:"score"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SubmitResult records the outcome of an in-progress game. Creating the
// result and flipping the game to completed happen in one transaction,
// so a completed game always has exactly one result. A second
// submission for the same game is rejected, never overwritten.
func (s *ResultService) SubmitResult(ctx context.Context, gameID, winningTeamID uuid.UUID, score int) (*tournament.Result, error) {
	if score < 0 {
		return nil, ErrNegativeScore
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, err := s.games.GetGameTx(ctx, tx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game.Status != tournament.GameInProgress {
		return nil, ErrGameNotInProgress
	}
	if !game.HasTeam(winningTeamID) {
		return nil, ErrInvalidWinner
	}

	if _, err := s.results.GetResultByGameTx(ctx, tx, gameID); err == nil {
		return nil, ErrDuplicateResult
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for existing result: %w", err)
	}

	now := time.Now().UTC()
	result := &tournament.Result{
		ID:            uuid.New(),
		GameID:        gameID,
		WinningTeamID: winningTeamID,
		Score:         score,
		CreatedAt:     now,
	}

	if err := s.results.CreateResult(ctx, tx, result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}

	game.Status = tournament.GameCompleted
	game.CompletedAt = &now
	if err := s.games.UpdateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to complete game: %w", err)
	}

	return result, tx.Commit()
}

func (s *ResultService) GetResult(ctx context.Context, id uuid.UUID) (*tournament.Result, error) {
	result, err := s.results.GetResult(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	return result, err
}

func (s *ResultService) ListResults(ctx context.Context) ([]tournament.Result, error) {
	return s.results.ListResults(ctx)
}

// View resolves the winning team for a single result.
func (s *ResultService) View(ctx context.Context, result *tournament.Result) (*ResultView, error) {
	views, err := s.Views(ctx, []tournament.Result{*result})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Views resolves winning teams for a batch of results.
func (s *ResultService) Views(ctx context.Context, results []tournament.Result) ([]ResultView, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	byID := make(map[uuid.UUID]*tournament.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	views := make([]ResultView, 0, len(results))
	for _, result := range results {
		views = append(views, ResultView{
			ID:            result.ID,
			GameID:        result.GameID,
			WinningTeamID: result.WinningTeamID,
			WinningTeam:   byID[result.WinningTeamID],
			Score:         result.Score,
			CreatedAt:     result.CreatedAt,
		})
	}
	return views, nil
}
