package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leetboard/internal/api"
	"leetboard/internal/app/service"
	"leetboard/internal/domain/model"
	"leetboard/internal/domain/repository"
	"leetboard/internal/platform/cache"
	"leetboard/internal/platform/config"
	"leetboard/internal/platform/database"
	"leetboard/internal/platform/leetcode"
	"leetboard/internal/platform/slackbot"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig

	// 2. Initialize Database
	database.Connect()
	defer database.Close()
	slog.Info("database connected")

	// 3. Initialize Redis (dispatch deduplication)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	slog.Info("redis connected")

	// 4. Initialize Repositories and external clients
	questionLogRepo := repository.NewPgQuestionLogRepository(database.DB)
	lcClient := leetcode.NewClient(nil, cfg.LeetCodeGraphQLURL)
	locker := cache.NewLocker(cache.RDB)

	var bot service.Broadcaster
	if cfg.SlackToken != "" {
		bot = slackbot.NewClient(cfg.SlackToken)
	} else {
		slog.Warn("SLACK_TOKEN not set, chat posting disabled")
	}

	// 5. Initialize Services
	questionService := service.NewQuestionService(
		lcClient, questionLogRepo, bot, locker,
		cfg.MaxFetchAttempts, cfg.AllowedDifficulties, cfg.DispatchLockTTL,
	)
	leaderboardService := service.NewLeaderboardService(
		lcClient, questionLogRepo, bot, locker,
		cfg.Usernames, cfg.SubmissionsLimit, model.SolvedRule(cfg.LeaderboardRule), cfg.DispatchLockTTL,
	)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(questionService, leaderboardService, cfg.CronSecret)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.APIPort, "rule", cfg.LeaderboardRule, "users", len(cfg.Usernames))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	slog.Info("server stopped gracefully")
}
