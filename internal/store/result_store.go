package store

import (
	"context"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ResultStore struct {
	db *sqlx.DB
}

const (
	createResultQuery = `
		INSERT INTO results (id, game_id, winning_team_id, score, created_at)
		VALUES (:id, :game_id, :winning_team_id, :score, :created_at)
	`
	getResultQuery       = "SELECT * FROM results WHERE id = ?"
	getResultByGameQuery = "SELECT * FROM results WHERE game_id = ?"
	listResultsQuery     = "SELECT * FROM results ORDER BY created_at ASC, id ASC"
)

func NewResultStore(db *sqlx.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) CreateResult(ctx context.Context, tx *sqlx.Tx, result *tournament.Result) error {
	_, err := tx.NamedExecContext(ctx, createResultQuery, result)
	return err
}

func (s *ResultStore) GetResult(ctx context.Context, id uuid.UUID) (*tournament.Result, error) {
	var result tournament.Result
	err := s.db.GetContext(ctx, &result, getResultQuery, id)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ResultStore) GetResultByGameTx(ctx context.Context, tx *sqlx.Tx, gameID uuid.UUID) (*tournament.Result, error) {
	var result tournament.Result
	err := tx.GetContext(ctx, &result, getResultByGameQuery, gameID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ResultStore) ListResults(ctx context.Context) ([]tournament.Result, error) {
	var results []tournament.Result
	err := s.db.SelectContext(ctx, &results, listResultsQuery)
	return results, err
}

func (s *ResultStore) DeleteAllResults(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM results")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
