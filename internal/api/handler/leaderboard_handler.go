package handler

import (
	"context"
	"net/http"

	"leetboard/internal/app/service"
	"leetboard/internal/common"

	"github.com/go-chi/chi/v5"
)

// LeaderboardComputer is implemented by service.LeaderboardService.
type LeaderboardComputer interface {
	ComputeAndPost(ctx context.Context) (*service.LeaderboardResult, error)
}

type LeaderboardHandler struct {
	leaderboardService LeaderboardComputer
}

func NewLeaderboardHandler(ls LeaderboardComputer) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	// Both verbs are accepted; Slack slash commands and cron triggers POST,
	// humans GET.
	r.Get("/", h.leaderboard)
	r.Post("/", h.leaderboard)
}

func (h *LeaderboardHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboardService.ComputeAndPost(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
