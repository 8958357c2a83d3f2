package service

import (
	"context"
	"fmt"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/jmoiron/sqlx"
)

type AdminService struct {
	db      *sqlx.DB
	teams   *store.TeamStore
	games   *store.GameStore
	results *store.ResultStore
}

func NewAdminService(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore, results *store.ResultStore) *AdminService {
	return &AdminService{db: db, teams: teams, games: games, results: results}
}

// ClearCounts reports how many rows of each kind were deleted.
type ClearCounts struct {
	Results int64 `json:"results"`
	Games   int64 `json:"games"`
	Teams   int64 `json:"teams"`
}

// ClearDatabase wipes all tournament data in one transaction, deleting
// in foreign-key order: results, then games, then teams.
func (s *AdminService) ClearDatabase(ctx context.Context) (*ClearCounts, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var counts ClearCounts
	if counts.Results, err = s.results.DeleteAllResults(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to delete results: %w", err)
	}
	if counts.Games, err = s.games.DeleteAllGames(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to delete games: %w", err)
	}
	if counts.Teams, err = s.teams.DeleteAllTeams(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to delete teams: %w", err)
	}

	return &counts, tx.Commit()
}
