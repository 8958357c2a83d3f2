package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RankingService struct {
	db      *sqlx.DB
	teams   *store.TeamStore
	games   *store.GameStore
	results *store.ResultStore
}

func NewRankingService(db *sqlx.DB, teams *store.TeamStore, games *store.GameStore, results *store.ResultStore) *RankingService {
	return &RankingService{db: db, teams: teams, games: games, results: results}
}

// GetRankings computes the current standings. Read-only; safe to call
// at any time.
func (s *RankingService) GetRankings(ctx context.Context) ([]tournament.Standing, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	completed, err := s.games.ListGamesByStatus(ctx, tournament.GameCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed games: %w", err)
	}
	results, err := s.results.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return computeStandings(teams, completed, results), nil
}

// computeStandings ranks teams by total score, tie-broken by win rate,
// both descending. Teams tied on both keys get consecutive ranks in
// team creation order. Win rates are sorted unrounded and only rounded
// for display afterwards, so the displayed order always matches the
// sorted order.
func computeStandings(teams []tournament.Team, completed []tournament.Game, results []tournament.Result) []tournament.Standing {
	wins := make(map[uuid.UUID]int)
	totalScore := make(map[uuid.UUID]int)
	for _, result := range results {
		wins[result.WinningTeamID]++
		totalScore[result.WinningTeamID] += result.Score
	}

	gamesPlayed := make(map[uuid.UUID]int)
	for i := range completed {
		gamesPlayed[completed[i].Team1ID]++
		gamesPlayed[completed[i].Team2ID]++
	}

	standings := make([]tournament.Standing, 0, len(teams))
	for _, team := range teams {
		played := gamesPlayed[team.ID]
		won := wins[team.ID]

		winRate := 0.0
		if played > 0 {
			winRate = float64(won) / float64(played)
		}

		standings = append(standings, tournament.Standing{
			TeamID:      team.ID,
			TeamName:    team.Name,
			Players:     []string{team.Player1, team.Player2},
			TotalScore:  totalScore[team.ID],
			GamesPlayed: played,
			GamesWon:    won,
			GamesLost:   played - won,
			WinRate:     winRate,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		return standings[i].WinRate > standings[j].WinRate
	})

	for i := range standings {
		standings[i].Rank = i + 1
		standings[i].WinRate = math.Round(standings[i].WinRate*1000) / 1000
	}

	return standings
}
