package service

import (
	"context"
	"testing"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitResult(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	result, err := f.results.SubmitResult(ctx, game.ID, teams[1].ID, 15)
	require.NoError(t, err)
	assert.Equal(t, game.ID, result.GameID)
	assert.Equal(t, teams[1].ID, result.WinningTeamID)
	assert.Equal(t, 15, result.Score)

	completed, err := f.games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, tournament.GameCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	fetched, err := f.results.GetResult(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, fetched.ID)
}

func TestSubmitResultValidation(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl", "Elsa")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)

	_, err = f.results.SubmitResult(ctx, game.ID, teams[0].ID, -1)
	assert.ErrorIs(t, err, ErrNegativeScore)

	_, err = f.results.SubmitResult(ctx, tid(99), teams[0].ID, 5)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// The game is still scheduled.
	_, err = f.results.SubmitResult(ctx, game.ID, teams[0].ID, 5)
	assert.ErrorIs(t, err, ErrGameNotInProgress)

	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	_, err = f.results.SubmitResult(ctx, game.ID, teams[2].ID, 5)
	assert.ErrorIs(t, err, ErrInvalidWinner)

	_, err = f.results.SubmitResult(ctx, game.ID, teams[0].ID, 0)
	require.NoError(t, err, "a zero score is valid")
}

func TestSubmitResultDuplicateRejected(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	first, err := f.results.SubmitResult(ctx, game.ID, teams[0].ID, 10)
	require.NoError(t, err)

	_, err = f.results.SubmitResult(ctx, game.ID, teams[1].ID, 20)
	assert.ErrorIs(t, err, ErrDuplicateResult)

	// The original result is untouched.
	results, err := f.results.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first.ID, results[0].ID)
	assert.Equal(t, teams[0].ID, results[0].WinningTeamID)
	assert.Equal(t, 10, results[0].Score)
}
