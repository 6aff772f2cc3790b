package handler

import (
	"context"
	"net/http"

	"leetboard/internal/app/service"
	"leetboard/internal/common"

	"github.com/go-chi/chi/v5"
)

// QuestionPicker is implemented by service.QuestionService.
type QuestionPicker interface {
	PickQuestionOfDay(ctx context.Context) (*service.QuestionOfDayResult, error)
}

type QuestionHandler struct {
	questionService QuestionPicker
}

func NewQuestionHandler(qs QuestionPicker) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.randomQuestion) // GET /random-question
}

func (h *QuestionHandler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	result, err := h.questionService.PickQuestionOfDay(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
