package store

import (
	"context"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

const (
	createTeamsQuery = `
		INSERT INTO teams (id, name, player_1, player_2, created_at)
		VALUES (:id, :name, :player_1, :player_2, :created_at)
	`
	listTeamsQuery = "SELECT * FROM teams ORDER BY created_at ASC, id ASC"
	getTeamQuery   = "SELECT * FROM teams WHERE id = ?"
)

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeams(ctx context.Context, tx *sqlx.Tx, teams []tournament.Team) error {
	if len(teams) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, createTeamsQuery, teams)
	return err
}

func (s *TeamStore) ListTeams(ctx context.Context) ([]tournament.Team, error) {
	var teams []tournament.Team
	err := s.db.SelectContext(ctx, &teams, listTeamsQuery)
	return teams, err
}

func (s *TeamStore) ListTeamsTx(ctx context.Context, tx *sqlx.Tx) ([]tournament.Team, error) {
	var teams []tournament.Team
	err := tx.SelectContext(ctx, &teams, listTeamsQuery)
	return teams, err
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*tournament.Team, error) {
	var team tournament.Team
	err := s.db.GetContext(ctx, &team, getTeamQuery, id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tournament.Team, error) {
	var team tournament.Team
	err := tx.GetContext(ctx, &team, getTeamQuery, id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam removes a team and reports whether a row was deleted.
func (s *TeamStore) DeleteTeam(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *TeamStore) DeleteAllTeams(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM teams")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
