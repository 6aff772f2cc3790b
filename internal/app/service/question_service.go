package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
	"leetboard/internal/domain/repository"

	"github.com/gosimple/slug"
)

// QuestionFetcher is the slice of the LeetCode client this service needs.
type QuestionFetcher interface {
	RandomQuestion(ctx context.Context) (*model.Question, error)
}

type QuestionService struct {
	fetcher     QuestionFetcher
	logRepo     repository.QuestionLogRepository
	bot         Broadcaster    // nil disables chat posting
	locker      DispatchLocker // nil disables dispatch deduplication
	maxAttempts int
	allowed     map[model.QuestionDifficulty]bool
	lockTTL     time.Duration

	now func() time.Time
}

func NewQuestionService(
	fetcher QuestionFetcher,
	logRepo repository.QuestionLogRepository,
	bot Broadcaster,
	locker DispatchLocker,
	maxAttempts int,
	allowedDifficulties []string,
	lockTTL time.Duration,
) *QuestionService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	allowed := make(map[model.QuestionDifficulty]bool, len(allowedDifficulties))
	for _, d := range allowedDifficulties {
		allowed[model.QuestionDifficulty(d)] = true
	}
	return &QuestionService{
		fetcher:     fetcher,
		logRepo:     logRepo,
		bot:         bot,
		locker:      locker,
		maxAttempts: maxAttempts,
		allowed:     allowed,
		lockTTL:     lockTTL,
		now:         time.Now,
	}
}

type QuestionOfDayResult struct {
	Question       *model.Question `json:"question"`
	Attempts       int             `json:"attempts"`
	PostedChannels int             `json:"posted_channels"`
	FailedChannels int             `json:"failed_channels"`
	PostSkipped    bool            `json:"post_skipped,omitempty"`
}

// PickQuestionOfDay fetches random questions until one passes the
// eligibility predicates, records its slug and announces it in chat.
//
// The loop is bounded: after maxAttempts ineligible draws it gives up with
// ErrNoEligibleQuestion. Transport failures and unparsable responses abort
// immediately; only "valid shape, ineligible content" retries. A slug that
// is already in the log counts as ineligible, since that question was some
// earlier day's pick.
func (s *QuestionService) PickQuestionOfDay(ctx context.Context) (*QuestionOfDayResult, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		question, err := s.fetcher.RandomQuestion(ctx)
		if err != nil {
			return nil, common.Errorf("fetch random question: %w", err)
		}

		if reason := s.ineligible(question); reason != "" {
			slog.Info("question not eligible, retrying",
				"slug", question.TitleSlug, "reason", reason, "attempt", attempt)
			continue
		}

		logged, err := s.logRepo.Log(ctx, slug.Make(question.TitleSlug))
		if err != nil {
			if errors.Is(err, common.ErrConflict) {
				slog.Info("question already assigned, retrying",
					"slug", question.TitleSlug, "attempt", attempt)
				continue
			}
			return nil, common.Errorf("log question slug: %w", err)
		}
		slog.Info("picked question of the day",
			"slug", logged.Slug, "difficulty", question.Difficulty, "attempts", attempt)

		result := &QuestionOfDayResult{Question: question, Attempts: attempt}
		lockKey := "daily-question:" + s.now().UTC().Format("2006-01-02")
		result.PostedChannels, result.FailedChannels, result.PostSkipped =
			dispatch(ctx, s.bot, s.locker, lockKey, s.lockTTL, BuildDailyQuestionMessage(*question))

		return result, nil
	}

	return nil, common.Errorf("%w after %d attempts", common.ErrNoEligibleQuestion, s.maxAttempts)
}

// ineligible returns a non-empty reason when the question fails a semantic
// predicate. These are the retryable failures, as opposed to shape errors.
func (s *QuestionService) ineligible(q *model.Question) string {
	switch {
	case q.IsPaidOnly:
		return "paid only"
	case q.Content == "":
		return "no content"
	case !s.allowed[q.Difficulty]:
		return "difficulty not allowed"
	}
	return ""
}
