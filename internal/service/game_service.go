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

type GameService struct {
	db    *sqlx.DB
	teams *store.TeamStore
	games *store.GameStore
}

func NewGameService(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore) *GameService {
	return &GameService{db: db, teams: teams, games: games}
}

// GameView is a game with its teams resolved, as returned by the API.
type GameView struct {
	ID          uuid.UUID             `json:"id"`
	Team1       *tournament.Team      `json:"team1"`
	Team2       *tournament.Team      `json:"team2"`
	Status      tournament.GameStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	StartedAt   *time.Time            `json:"started_at"`
	CompletedAt *time.Time            `json:"completed_at"`
}

// UpdateGameInput carries the optional fields of a game update. Team
// changes are only allowed while the game is still scheduled.
type UpdateGameInput struct {
	Team1ID *uuid.UUID
	Team2ID *uuid.UUID
	Status  *tournament.GameStatus
}

// CreateGame creates a scheduled game between two idle teams that have
// not played each other yet. The pair is normalized so the lower id is
// stored as team 1, whichever order the caller passed them in.
func (s *GameService) CreateGame(ctx context.Context, team1ID, team2ID uuid.UUID) (*tournament.Game, error) {
	if team1ID == team2ID {
		return nil, ErrSameTeamMatchup
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, id := range []uuid.UUID{team1ID, team2ID} {
		if _, err := s.teams.GetTeamTx(ctx, tx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
	}

	matchup := tournament.NewMatchup(team1ID, team2ID)

	inProgress, err := s.games.ListGamesByStatusTx(ctx, tx, tournament.GameInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress games: %w", err)
	}
	busy := tournament.BusyTeams(inProgress)
	if busy[matchup.A] || busy[matchup.B] {
		return nil, ErrTeamAlreadyPlaying
	}

	completed, err := s.games.ListGamesByStatusTx(ctx, tx, tournament.GameCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed games: %w", err)
	}
	if _, ok := tournament.BuildMatchupIndex(completed)[matchup]; ok {
		return nil, ErrMatchupPlayed
	}

	game := &tournament.Game{
		ID:        uuid.New(),
		Team1ID:   matchup.A,
		Team2ID:   matchup.B,
		Status:    tournament.GameScheduled,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.games.CreateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, tx.Commit()
}

func (s *GameService) GetGame(ctx context.Context, id uuid.UUID) (*tournament.Game, error) {
	game, err := s.games.GetGame(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	return game, err
}

// ListGames returns all games, or only those with the given status.
func (s *GameService) ListGames(ctx context.Context, status tournament.GameStatus) ([]tournament.Game, error) {
	if status == "" {
		return s.games.ListGames(ctx)
	}
	if !tournament.ValidGameStatus(status) {
		return nil, ErrInvalidGameStatus
	}
	return s.games.ListGamesByStatus(ctx, status)
}

func (s *GameService) CurrentGames(ctx context.Context) ([]tournament.Game, error) {
	return s.games.ListGamesByStatus(ctx, tournament.GameInProgress)
}

// AvailableTeams returns the teams not part of any in-progress game.
func (s *GameService) AvailableTeams(ctx context.Context) ([]tournament.Team, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	inProgress, err := s.games.ListGamesByStatus(ctx, tournament.GameInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress games: %w", err)
	}

	busy := tournament.BusyTeams(inProgress)
	available := make([]tournament.Team, 0, len(teams))
	for _, team := range teams {
		if !busy[team.ID] {
			available = append(available, team)
		}
	}
	return available, nil
}

// StartGame transitions a scheduled game to in_progress and records
// the start time.
func (s *GameService) StartGame(ctx context.Context, id uuid.UUID) (*tournament.Game, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, err := s.games.GetGameTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game.Status != tournament.GameScheduled {
		return nil, ErrGameNotScheduled
	}

	now := time.Now().UTC()
	game.Status = tournament.GameInProgress
	game.StartedAt = &now

	if err := s.games.UpdateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, tx.Commit()
}

// UpdateGame changes a game's teams and/or status. Teams can only be
// swapped while the game is scheduled, and completion always goes
// through result submission so a completed game cannot exist without
// its result.
func (s *GameService) UpdateGame(ctx context.Context, id uuid.UUID, input UpdateGameInput) (*tournament.Game, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, err := s.games.GetGameTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if input.Team1ID != nil || input.Team2ID != nil {
		if game.Status != tournament.GameScheduled {
			return nil, ErrGameNotScheduled
		}
		team1ID := game.Team1ID
		team2ID := game.Team2ID
		if input.Team1ID != nil {
			team1ID = *input.Team1ID
		}
		if input.Team2ID != nil {
			team2ID = *input.Team2ID
		}
		if team1ID == team2ID {
			return nil, ErrSameTeamMatchup
		}
		matchup := tournament.NewMatchup(team1ID, team2ID)
		game.Team1ID = matchup.A
		game.Team2ID = matchup.B
	}

	if input.Status != nil {
		status := *input.Status
		if !tournament.ValidGameStatus(status) {
			return nil, ErrInvalidGameStatus
		}
		if status == tournament.GameCompleted {
			return nil, ErrCompleteViaResult
		}
		if status == tournament.GameInProgress && game.StartedAt == nil {
			now := time.Now().UTC()
			game.StartedAt = &now
		}
		game.Status = status
	}

	if err := s.games.UpdateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, tx.Commit()
}

// DeleteGame removes a game that has not started yet.
func (s *GameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	game, err := s.games.GetGameTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game.Status != tournament.GameScheduled {
		return ErrGameNotScheduled
	}

	if err := s.games.DeleteGame(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return tx.Commit()
}

// View resolves a single game's teams for the API response.
func (s *GameService) View(ctx context.Context, game *tournament.Game) (*GameView, error) {
	views, err := s.Views(ctx, []tournament.Game{*game})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Views resolves team references for a batch of games.
func (s *GameService) Views(ctx context.Context, games []tournament.Game) ([]GameView, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	byID := make(map[uuid.UUID]*tournament.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	views := make([]GameView, 0, len(games))
	for i := range games {
		game := &games[i]
		views = append(views, GameView{
			ID:          game.ID,
			Team1:       byID[game.Team1ID],
			Team2:       byID[game.Team2ID],
			Status:      game.Status,
			CreatedAt:   game.CreatedAt,
			StartedAt:   game.StartedAt,
			CompletedAt: game.CompletedAt,
		})
	}
	return views, nil
}
