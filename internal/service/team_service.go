package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	minPlayers = 2
	maxPlayers = 40
)

type TeamService struct {
	db    *sqlx.DB
	teams *store.TeamStore
	games *store.GameStore
	rng   *rand.Rand
}

// NewTeamService takes the randomness source used to shuffle players
// during batch team formation, so tests can seed it.
func NewTeamService(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore, rng *rand.Rand) *TeamService {
	return &TeamService{db: db, teams: teams, games: games, rng: rng}
}

// CreateTeamsFromPlayers shuffles the given players and pairs them off
// into teams of two, numbering the new teams after the highest existing
// "Team N" name.
func (s *TeamService) CreateTeamsFromPlayers(ctx context.Context, players []string) ([]tournament.Team, error) {
	if len(players) < minPlayers {
		return nil, ErrNotEnoughPlayers
	}
	if len(players) > maxPlayers {
		return nil, ErrTooManyPlayers
	}
	if len(players)%2 != 0 {
		return nil, ErrOddPlayerCount
	}

	shuffled := make([]string, len(players))
	copy(shuffled, players)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := s.teams.ListTeamsTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	number := nextTeamNumber(teamNames(existing))

	now := time.Now().UTC()
	teams := make([]tournament.Team, 0, len(shuffled)/2)
	for i := 0; i < len(shuffled); i += 2 {
		teams = append(teams, tournament.Team{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Team %d", number),
			Player1:   shuffled[i],
			Player2:   shuffled[i+1],
			CreatedAt: now,
		})
		number++
	}

	if err := s.teams.CreateTeams(ctx, tx, teams); err != nil {
		return nil, fmt.Errorf("failed to create teams: %w", err)
	}

	return teams, tx.Commit()
}

// CreateTeamManually creates a single team with the given players,
// numbered after the highest existing "Team N" name.
func (s *TeamService) CreateTeamManually(ctx context.Context, player1, player2 string) (*tournament.Team, error) {
	player1 = strings.TrimSpace(player1)
	player2 = strings.TrimSpace(player2)
	if player1 == "" || player2 == "" {
		return nil, ErrPlayerNameRequired
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := s.teams.ListTeamsTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	team := tournament.Team{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("Team %d", nextTeamNumber(teamNames(existing))),
		Player1:   player1,
		Player2:   player2,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.teams.CreateTeams(ctx, tx, []tournament.Team{team}); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return &team, tx.Commit()
}

func (s *TeamService) ListTeams(ctx context.Context) ([]tournament.Team, error) {
	return s.teams.ListTeams(ctx)
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*tournament.Team, error) {
	team, err := s.teams.GetTeam(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	return team, err
}

// DeleteTeam removes a team, but only if it has never appeared in any
// game of any status.
func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	count, err := s.games.CountGamesForTeam(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count games: %w", err)
	}
	if count > 0 {
		return ErrTeamHasGames
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted, err := s.teams.DeleteTeam(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if !deleted {
		return ErrTeamNotFound
	}

	return tx.Commit()
}

func teamNames(teams []tournament.Team) []string {
	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.Name
	}
	return names
}

// nextTeamNumber returns one past the highest trailing integer found in
// the existing team names. Names that don't end in a parseable integer
// are ignored.
func nextTeamNumber(names []string) int {
	max := 0
	for _, name := range names {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
