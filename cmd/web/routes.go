package main

import (
	"errors"
	"net/http"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/httputil"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/service"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/tournament"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type routerDeps struct {
	teams       *service.TeamService
	games       *service.GameService
	results     *service.ResultService
	rankings    *service.RankingService
	scheduler   *service.Scheduler
	admin       *service.AdminService
	corsOrigins []string
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/teams", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Players []string `json:"players"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			teams, err := deps.teams.CreateTeamsFromPlayers(r.Context(), req.Players)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusCreated, map[string]any{"teams": teams})
		})

		r.Get("/teams", func(w http.ResponseWriter, r *http.Request) {
			teams, err := deps.teams.ListTeams(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if teams == nil {
				teams = []tournament.Team{}
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"teams": teams})
		})

		r.Get("/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid team ID", err)
				return
			}
			team, err := deps.teams.GetTeam(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, team)
		})

		r.Delete("/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid team ID", err)
				return
			}
			if err := deps.teams.DeleteTeam(r.Context(), id); err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
		})

		r.Post("/teams/manual", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Player1 string `json:"player1"`
				Player2 string `json:"player2"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			team, err := deps.teams.CreateTeamManually(r.Context(), req.Player1, req.Player2)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusCreated, team)
		})

		r.Get("/games", func(w http.ResponseWriter, r *http.Request) {
			status := tournament.GameStatus(r.URL.Query().Get("status"))
			games, err := deps.games.ListGames(r.Context(), status)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			views, err := deps.games.Views(r.Context(), games)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"games": views})
		})

		r.Get("/games/current", func(w http.ResponseWriter, r *http.Request) {
			games, err := deps.games.CurrentGames(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			views, err := deps.games.Views(r.Context(), games)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"games": views})
		})

		r.Get("/games/available-teams", func(w http.ResponseWriter, r *http.Request) {
			teams, err := deps.games.AvailableTeams(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"teams": teams})
		})

		r.Post("/games/generate", func(w http.ResponseWriter, r *http.Request) {
			game, err := deps.scheduler.GenerateNextGame(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.games.View(r.Context(), game)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusCreated, view)
		})

		r.Post("/games", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Team1ID uuid.UUID `json:"team1_id"`
				Team2ID uuid.UUID `json:"team2_id"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			game, err := deps.games.CreateGame(r.Context(), req.Team1ID, req.Team2ID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.games.View(r.Context(), game)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusCreated, view)
		})

		r.Put("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			var req struct {
				Team1ID *uuid.UUID             `json:"team1_id"`
				Team2ID *uuid.UUID             `json:"team2_id"`
				Status  *tournament.GameStatus `json:"status"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			game, err := deps.games.UpdateGame(r.Context(), id, service.UpdateGameInput{
				Team1ID: req.Team1ID,
				Team2ID: req.Team2ID,
				Status:  req.Status,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.games.View(r.Context(), game)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, view)
		})

		r.Post("/games/{id}/start", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			game, err := deps.games.StartGame(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.games.View(r.Context(), game)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, view)
		})

		r.Delete("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			if err := deps.games.DeleteGame(r.Context(), id); err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]string{"message": "Game deleted successfully"})
		})

		r.Post("/results", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				GameID        uuid.UUID `json:"game_id"`
				WinningTeamID uuid.UUID `json:"winning_team_id"`
				Score         int       `json:"score"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			result, err := deps.results.SubmitResult(r.Context(), req.GameID, req.WinningTeamID, req.Score)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.results.View(r.Context(), result)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusCreated, view)
		})

		r.Get("/results", func(w http.ResponseWriter, r *http.Request) {
			results, err := deps.results.ListResults(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			views, err := deps.results.Views(r.Context(), results)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"results": views})
		})

		r.Get("/results/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid result ID", err)
				return
			}
			result, err := deps.results.GetResult(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			view, err := deps.results.View(r.Context(), result)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, view)
		})

		r.Get("/rankings", func(w http.ResponseWriter, r *http.Request) {
			rankings, err := deps.rankings.GetRankings(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{"rankings": rankings})
		})

		r.Get("/match-matrix", func(w http.ResponseWriter, r *http.Request) {
			matrix, err := deps.games.GetMatchMatrix(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, matrix)
		})

		r.Post("/admin/clear-database", func(w http.ResponseWriter, r *http.Request) {
			counts, err := deps.admin.ClearDatabase(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httputil.JSON(w, http.StatusOK, map[string]any{
				"message": "Database cleared successfully",
				"deleted": counts,
			})
		})
	})

	return r
}

// writeServiceError maps service-layer errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrResultNotFound):
		httputil.NotFound(w, err.Error(), err)

	case errors.Is(err, service.ErrNoTeamsAvailable),
		errors.Is(err, service.ErrMatchupsExhausted),
		errors.Is(err, service.ErrNotEnoughPlayers),
		errors.Is(err, service.ErrTooManyPlayers),
		errors.Is(err, service.ErrOddPlayerCount),
		errors.Is(err, service.ErrPlayerNameRequired),
		errors.Is(err, service.ErrTeamHasGames),
		errors.Is(err, service.ErrSameTeamMatchup),
		errors.Is(err, service.ErrTeamAlreadyPlaying),
		errors.Is(err, service.ErrMatchupPlayed),
		errors.Is(err, service.ErrGameNotScheduled),
		errors.Is(err, service.ErrInvalidGameStatus),
		errors.Is(err, service.ErrCompleteViaResult),
		errors.Is(err, service.ErrGameNotInProgress),
		errors.Is(err, service.ErrInvalidWinner),
		errors.Is(err, service.ErrNegativeScore),
		errors.Is(err, service.ErrDuplicateResult):
		httputil.BadRequest(w, err.Error(), err)

	default:
		httputil.InternalServerError(w, "Unexpected error", err)
	}
}
