package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Samuel-Levesque/poul-le-fun-app/internal/db"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/service"
	"github.com/Samuel-Levesque/poul-le-fun-app/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	database := db.InitDB(envOr("DATABASE_PATH", "poul_le_fun.db"))
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	teamStore := store.NewTeamStore(database)
	gameStore := store.NewGameStore(database)
	resultStore := store.NewResultStore(database)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	router := newRouter(routerDeps{
		teams:     service.NewTeamService(database, teamStore, gameStore, rng),
		games:     service.NewGameService(database, teamStore, gameStore),
		results:   service.NewResultService(database, teamStore, gameStore, resultStore),
		rankings:  service.NewRankingService(database, teamStore, gameStore, resultStore),
		scheduler: service.NewScheduler(database, teamStore, gameStore),
		admin:     service.NewAdminService(database, teamStore, gameStore, resultStore),
		corsOrigins: strings.Split(
			envOr("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174"), ","),
	})

	addr := ":" + envOr("PORT", "8080")
	log.Println("Server starting on http://localhost" + addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
