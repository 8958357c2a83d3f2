package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearDatabase(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	teamStore := store.NewTeamStore(db)
	gameStore := store.NewGameStore(db)
	resultStore := store.NewResultStore(db)

	rng := rand.New(rand.NewSource(1))
	teamService := NewTeamService(db, teamStore, gameStore, rng)
	resultService := NewResultService(db, teamStore, gameStore, resultStore)
	scheduler := NewScheduler(db, teamStore, gameStore)
	adminService := NewAdminService(db, teamStore, gameStore, resultStore)

	ctx := context.Background()

	_, err := teamService.CreateTeamsFromPlayers(ctx, []string{"Anne", "Ben", "Carl", "Dana"})
	require.NoError(t, err)

	game, err := scheduler.GenerateNextGame(ctx)
	require.NoError(t, err)
	_, err = resultService.SubmitResult(ctx, game.ID, game.Team1ID, 7)
	require.NoError(t, err)

	counts, err := adminService.ClearDatabase(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Results)
	assert.Equal(t, int64(1), counts.Games)
	assert.Equal(t, int64(2), counts.Teams)

	teams, err := teamService.ListTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)

	results, err := resultService.ListResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Clearing an empty database is a no-op.
	counts, err = adminService.ClearDatabase(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Results+counts.Games+counts.Teams)
}
