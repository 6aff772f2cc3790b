package api

import (
	"net/http"
	"time"

	"leetboard/internal/api/handler"
	"leetboard/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	questionService handler.QuestionPicker,
	leaderboardService handler.LeaderboardComputer,
	cronSecret string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Cron-protected question of the day
	questionHandler := handler.NewQuestionHandler(questionService)
	r.Route("/random-question", func(cron chi.Router) {
		cron.Use(middleware.CronAuth(cronSecret))
		questionHandler.RegisterRoutes(cron)
	})

	// Leaderboard (public)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	r.Route("/leaderboard", leaderboardHandler.RegisterRoutes)

	return r
}
