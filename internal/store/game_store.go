package store

import (
	"context"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GameStore struct {
	db *sqlx.DB
}

const (
	createGameQuery = `
		INSERT INTO games (id, team_1_id, team_2_id, status, created_at, started_at, completed_at)
		VALUES (:id, :team_1_id, :team_2_id, :status, :created_at, :started_at, :completed_at)
	`
	updateGameQuery = `
		UPDATE games SET
		team_1_id = :team_1_id,
		team_2_id = :team_2_id,
		status = :status,
		started_at = :started_at,
		completed_at = :completed_at
		WHERE id = :id
	`
	getGameQuery           = "SELECT * FROM games WHERE id = ?"
	listGamesQuery         = "SELECT * FROM games ORDER BY created_at ASC, id ASC"
	listGamesByStatusQuery = "SELECT * FROM games WHERE status = ? ORDER BY created_at ASC, id ASC"
)

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, tx *sqlx.Tx, game *tournament.Game) error {
	_, err := tx.NamedExecContext(ctx, createGameQuery, game)
	return err
}

func (s *GameStore) UpdateGame(ctx context.Context, tx *sqlx.Tx, game *tournament.Game) error {
	_, err := tx.NamedExecContext(ctx, updateGameQuery, game)
	return err
}

func (s *GameStore) GetGame(ctx context.Context, id uuid.UUID) (*tournament.Game, error) {
	var game tournament.Game
	err := s.db.GetContext(ctx, &game, getGameQuery, id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) GetGameTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tournament.Game, error) {
	var game tournament.Game
	err := tx.GetContext(ctx, &game, getGameQuery, id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) ListGames(ctx context.Context) ([]tournament.Game, error) {
	var games []tournament.Game
	err := s.db.SelectContext(ctx, &games, listGamesQuery)
	return games, err
}

func (s *GameStore) ListGamesByStatus(ctx context.Context, status tournament.GameStatus) ([]tournament.Game, error) {
	var games []tournament.Game
	err := s.db.SelectContext(ctx, &games, listGamesByStatusQuery, status)
	return games, err
}

func (s *GameStore) ListGamesByStatusTx(ctx context.Context, tx *sqlx.Tx, status tournament.GameStatus) ([]tournament.Game, error) {
	var games []tournament.Game
	err := tx.SelectContext(ctx, &games, listGamesByStatusQuery, status)
	return games, err
}

// CountGamesForTeam counts games of any status involving the team.
func (s *GameStore) CountGamesForTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM games WHERE team_1_id = ? OR team_2_id = ?", teamID, teamID)
	return count, err
}

func (s *GameStore) DeleteGame(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	return err
}

func (s *GameStore) DeleteAllGames(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM games")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
