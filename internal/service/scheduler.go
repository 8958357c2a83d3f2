package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Scheduler picks the fairest next matchup among idle teams and commits
// it as an in-progress game. Selection and commit happen inside a
// single transaction, and a mutex serializes concurrent generation so
// two requests can never double-book the same idle team.
type Scheduler struct {
	db    *sqlx.DB
	teams *store.TeamStore
	games *store.GameStore

	mu sync.Mutex
}

func NewScheduler(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore) *Scheduler {
	return &Scheduler{db: db, teams: teams, games: games}
}

// GenerateNextGame reads a fresh snapshot of the tournament, picks the
// fairest unplayed matchup between idle teams and persists it as an
// in-progress game. Returns ErrNoTeamsAvailable or ErrMatchupsExhausted
// when no game can be generated.
func (s *Scheduler) GenerateNextGame(ctx context.Context) (*tournament.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	teams, err := s.teams.ListTeamsTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	completed, err := s.games.ListGamesByStatusTx(ctx, tx, tournament.GameCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed games: %w", err)
	}
	inProgress, err := s.games.ListGamesByStatusTx(ctx, tx, tournament.GameInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress games: %w", err)
	}

	matchup, err := pickNextMatchup(teams, completed, inProgress)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	game := &tournament.Game{
		ID:        uuid.New(),
		Team1ID:   matchup.A,
		Team2ID:   matchup.B,
		Status:    tournament.GameInProgress,
		CreatedAt: now,
		StartedAt: &now,
	}

	if err := s.games.CreateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, tx.Commit()
}

// pickNextMatchup selects the fairest unplayed pair of idle teams. It
// recomputes history from the given snapshot on every call; nothing is
// cached between invocations.
func pickNextMatchup(teams []tournament.Team, completed, inProgress []tournament.Game) (tournament.Matchup, error) {
	if len(teams) < 2 {
		return tournament.Matchup{}, ErrNoTeamsAvailable
	}

	busy := tournament.BusyTeams(inProgress)

	available := make([]uuid.UUID, 0, len(teams))
	for _, team := range teams {
		if !busy[team.ID] {
			available = append(available, team.ID)
		}
	}
	if len(available) < 2 {
		return tournament.Matchup{}, ErrNoTeamsAvailable
	}

	// Sorting the ids makes candidate enumeration, and therefore the
	// tie-break among equal fairness scores, deterministic.
	sortIDs(available)

	played := tournament.BuildMatchupIndex(completed)

	gamesPlayed := make(map[uuid.UUID]int, len(teams))
	for i := range completed {
		gamesPlayed[completed[i].Team1ID]++
		gamesPlayed[completed[i].Team2ID]++
	}

	var best tournament.Matchup
	bestScore := 0
	found := false

	for i := 0; i < len(available); i++ {
		for j := i + 1; j < len(available); j++ {
			matchup := tournament.Matchup{A: available[i], B: available[j]}
			if _, ok := played[matchup]; ok {
				continue
			}
			score := matchupScore(gamesPlayed[matchup.A], gamesPlayed[matchup.B])
			if !found || score > bestScore {
				best = matchup
				bestScore = score
				found = true
			}
		}
	}

	if !found {
		return tournament.Matchup{}, ErrMatchupsExhausted
	}
	return best, nil
}

// matchupScore rates the fairness of pairing two teams with the given
// completed-game counts. Higher is fairer: low combined play count,
// low imbalance between the two.
func matchupScore(count1, count2 int) int {
	imbalance := count1 - count2
	if imbalance < 0 {
		imbalance = -imbalance
	}
	return -(count1 + count2) - imbalance
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
