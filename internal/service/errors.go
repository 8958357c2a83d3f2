package service

import "errors"

// Errors surfaced by the service layer and mapped to HTTP statuses in
// the routing layer. All of them are recoverable at the request level.
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrResultNotFound = errors.New("result not found")

	// Scheduler outcomes. Neither is a fault: the first means "wait for
	// a game to finish", the second "this round is complete".
	ErrNoTeamsAvailable  = errors.New("not enough available teams to generate a game")
	ErrMatchupsExhausted = errors.New("all matchups between available teams have been played")

	// Team formation
	ErrNotEnoughPlayers   = errors.New("at least 2 players required")
	ErrTooManyPlayers     = errors.New("maximum 40 players allowed")
	ErrOddPlayerCount     = errors.New("number of players must be even")
	ErrPlayerNameRequired = errors.New("player names cannot be empty")
	ErrTeamHasGames       = errors.New("cannot delete a team that has played games")

	// Game creation and lifecycle
	ErrSameTeamMatchup    = errors.New("teams must be different")
	ErrTeamAlreadyPlaying = errors.New("one or both teams are already playing")
	ErrMatchupPlayed      = errors.New("these teams have already played")
	ErrGameNotScheduled   = errors.New("game is no longer in scheduled status")
	ErrInvalidGameStatus  = errors.New("invalid game status")
	ErrCompleteViaResult  = errors.New("games are completed by submitting a result")

	// Result submission
	ErrGameNotInProgress = errors.New("can only submit results for in-progress games")
	ErrInvalidWinner     = errors.New("winning team must be one of the teams in the game")
	ErrNegativeScore     = errors.New("score must be non-negative")
	ErrDuplicateResult   = errors.New("result already exists for this game")
)
