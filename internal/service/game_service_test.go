package service

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameServiceFixture struct {
	teams     *TeamService
	games     *GameService
	results   *ResultService
	scheduler *Scheduler
}

func newGameServiceFixture(t *testing.T) *gameServiceFixture {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	teamStore := store.NewTeamStore(db)
	gameStore := store.NewGameStore(db)
	resultStore := store.NewResultStore(db)
	rng := rand.New(rand.NewSource(1))

	return &gameServiceFixture{
		teams:     NewTeamService(db, teamStore, gameStore, rng),
		games:     NewGameService(db, teamStore, gameStore),
		results:   NewResultService(db, teamStore, gameStore, resultStore),
		scheduler: NewScheduler(db, teamStore, gameStore),
	}
}

func (f *gameServiceFixture) createTeams(t *testing.T, names ...string) []tournament.Team {
	t.Helper()

	ctx := context.Background()
	teams := make([]tournament.Team, 0, len(names))
	for _, name := range names {
		team, err := f.teams.CreateTeamManually(ctx, name+" A", name+" B")
		require.NoError(t, err)
		teams = append(teams, *team)
	}
	return teams
}

func TestCreateGameNormalizesTeamOrder(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl")

	// Pass the pair in both orders: the stored game is identical either
	// way, and its matchup key matches the normalized pair.
	game, err := f.games.CreateGame(ctx, teams[1].ID, teams[0].ID)
	require.NoError(t, err)

	assert.True(t, bytes.Compare(game.Team1ID[:], game.Team2ID[:]) < 0)
	assert.Equal(t, tournament.NewMatchup(teams[0].ID, teams[1].ID), game.Matchup())
	assert.Equal(t, tournament.GameScheduled, game.Status)
	assert.Nil(t, game.StartedAt)
}

func TestCreateGameValidation(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl", "Elsa", "Gus")

	_, err := f.games.CreateGame(ctx, teams[0].ID, teams[0].ID)
	assert.ErrorIs(t, err, ErrSameTeamMatchup)

	_, err = f.games.CreateGame(ctx, teams[0].ID, tid(99))
	assert.ErrorIs(t, err, ErrTeamNotFound)

	// Occupy teams 0 and 1.
	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	_, err = f.games.CreateGame(ctx, teams[0].ID, teams[2].ID)
	assert.ErrorIs(t, err, ErrTeamAlreadyPlaying)

	// Complete the game, then the matchup cannot be recreated.
	_, err = f.results.SubmitResult(ctx, game.ID, game.Team1ID, 3)
	require.NoError(t, err)

	_, err = f.games.CreateGame(ctx, teams[1].ID, teams[0].ID)
	assert.ErrorIs(t, err, ErrMatchupPlayed)
}

func TestStartGame(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)

	started, err := f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, tournament.GameInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	_, err = f.games.StartGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrGameNotScheduled)

	_, err = f.games.StartGame(ctx, tid(99))
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestUpdateGame(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl", "Elsa")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)

	// Swap out the stored team 2; the pair is renormalized.
	updated, err := f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Team2ID: &teams[2].ID})
	require.NoError(t, err)
	assert.Equal(t, tournament.NewMatchup(game.Team1ID, teams[2].ID), updated.Matchup())

	same := teams[0].ID
	_, err = f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Team1ID: &same, Team2ID: &same})
	assert.ErrorIs(t, err, ErrSameTeamMatchup)

	badStatus := tournament.GameStatus("postponed")
	_, err = f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalidGameStatus)

	completed := tournament.GameCompleted
	_, err = f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Status: &completed})
	assert.ErrorIs(t, err, ErrCompleteViaResult)

	inProgress := tournament.GameInProgress
	updated, err = f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, tournament.GameInProgress, updated.Status)
	assert.NotNil(t, updated.StartedAt)

	// Teams are frozen once the game has started.
	_, err = f.games.UpdateGame(ctx, game.ID, UpdateGameInput{Team1ID: &teams[1].ID})
	assert.ErrorIs(t, err, ErrGameNotScheduled)
}

func TestDeleteGame(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl")

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)

	require.NoError(t, f.games.DeleteGame(ctx, game.ID))
	_, err = f.games.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)

	game, err = f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	err = f.games.DeleteGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrGameNotScheduled, "started games cannot be deleted")
}

func TestAvailableTeams(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl", "Elsa")

	available, err := f.games.AvailableTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 3)

	game, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, game.ID)
	require.NoError(t, err)

	available, err = f.games.AvailableTeams(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, teams[2].ID, available[0].ID)
}

func TestGetMatchMatrix(t *testing.T) {
	f := newGameServiceFixture(t)
	ctx := context.Background()
	teams := f.createTeams(t, "Anne", "Carl", "Elsa")

	completedGame, err := f.games.CreateGame(ctx, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, completedGame.ID)
	require.NoError(t, err)
	_, err = f.results.SubmitResult(ctx, completedGame.ID, completedGame.Team1ID, 8)
	require.NoError(t, err)

	liveGame, err := f.games.CreateGame(ctx, teams[0].ID, teams[2].ID)
	require.NoError(t, err)
	_, err = f.games.StartGame(ctx, liveGame.ID)
	require.NoError(t, err)

	matrix, err := f.games.GetMatchMatrix(ctx)
	require.NoError(t, err)
	require.Len(t, matrix.Teams, 3)

	assert.Nil(t, matrix.Matrix[teams[0].ID][teams[0].ID], "diagonal cells are nil")

	cell := matrix.Matrix[teams[0].ID][teams[1].ID]
	require.NotNil(t, cell)
	assert.Equal(t, string(tournament.GameCompleted), cell.Status)
	require.NotNil(t, cell.GameID)
	assert.Equal(t, completedGame.ID, *cell.GameID)

	// The mirrored cell reports the same game.
	mirror := matrix.Matrix[teams[1].ID][teams[0].ID]
	require.NotNil(t, mirror)
	assert.Equal(t, cell.Status, mirror.Status)
	assert.Equal(t, *cell.GameID, *mirror.GameID)

	live := matrix.Matrix[teams[0].ID][teams[2].ID]
	require.NotNil(t, live)
	assert.Equal(t, string(tournament.GameInProgress), live.Status)

	unplayed := matrix.Matrix[teams[1].ID][teams[2].ID]
	require.NotNil(t, unplayed)
	assert.Equal(t, "unplayed", unplayed.Status)
	assert.Nil(t, unplayed.GameID)
}
