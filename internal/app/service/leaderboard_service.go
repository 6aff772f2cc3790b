package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
	"leetboard/internal/domain/repository"
)

// SubmissionsFetcher is the slice of the LeetCode client this service needs.
type SubmissionsFetcher interface {
	RecentAcceptedSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error)
}

type LeaderboardService struct {
	fetcher   SubmissionsFetcher
	logRepo   repository.QuestionLogRepository
	bot       Broadcaster    // nil disables chat posting
	locker    DispatchLocker // nil disables dispatch deduplication
	usernames []string
	limit     int
	rule      model.SolvedRule
	theme     Theme
	lockTTL   time.Duration

	now func() time.Time
}

func NewLeaderboardService(
	fetcher SubmissionsFetcher,
	logRepo repository.QuestionLogRepository,
	bot Broadcaster,
	locker DispatchLocker,
	usernames []string,
	limit int,
	rule model.SolvedRule,
	lockTTL time.Duration,
) *LeaderboardService {
	if limit <= 0 {
		limit = 10
	}
	if rule != model.RuleAssignedQuestion {
		rule = model.RuleSubmissionDay
	}
	return &LeaderboardService{
		fetcher:   fetcher,
		logRepo:   logRepo,
		bot:       bot,
		locker:    locker,
		usernames: usernames,
		limit:     limit,
		rule:      rule,
		theme:     DefaultTheme(),
		lockTTL:   lockTTL,
		now:       time.Now,
	}
}

type LeaderboardResult struct {
	Leaderboard    model.Leaderboard `json:"leaderboard"`
	HighScorers    []string          `json:"high_scorers"`
	Questions      []string          `json:"questions"`
	WeekStart      time.Time         `json:"week_start"`
	WeekEnd        time.Time         `json:"week_end"`
	FailedUsers    []string          `json:"failed_users,omitempty"`
	PostedChannels int               `json:"posted_channels"`
	FailedChannels int               `json:"failed_channels"`
	PostSkipped    bool              `json:"post_skipped,omitempty"`
}

// ComputeAndPost rebuilds the weekly leaderboard from each user's recent
// accepted submissions, posts it to chat and returns it.
//
// Per-user fetches run concurrently and are joined all-settled: a user whose
// fetch fails is omitted from the board and listed in FailedUsers, never
// aborting the whole response.
func (s *LeaderboardService) ComputeAndPost(ctx context.Context) (*LeaderboardResult, error) {
	weekStart := model.StartOfWeek(s.now())
	week := model.WeekWindow(weekStart)

	assigned, err := s.logRepo.ListSince(ctx, weekStart)
	if err != nil {
		return nil, common.Errorf("list assigned questions: %w", err)
	}

	type fetchResult struct {
		submissions []model.Submission
		err         error
	}
	results := make([]fetchResult, len(s.usernames))

	var wg sync.WaitGroup
	for i, username := range s.usernames {
		wg.Add(1)
		go func(i int, username string) {
			defer wg.Done()
			submissions, err := s.fetcher.RecentAcceptedSubmissions(ctx, username, s.limit)
			results[i] = fetchResult{submissions: submissions, err: err}
		}(i, username)
	}
	wg.Wait()

	leaderboard := model.Leaderboard{}
	var failedUsers []string
	for i, username := range s.usernames {
		if results[i].err != nil {
			slog.Warn("failed to fetch submissions, omitting user",
				"user", username, "error", results[i].err)
			failedUsers = append(failedUsers, username)
			continue
		}
		leaderboard[username] = s.solvedDays(results[i].submissions, week, assigned)
	}

	questions := make([]string, 0, len(assigned))
	for _, q := range assigned {
		questions = append(questions, q.Slug)
	}

	result := &LeaderboardResult{
		Leaderboard: leaderboard,
		HighScorers: model.HighScorers(leaderboard),
		Questions:   questions,
		WeekStart:   weekStart,
		WeekEnd:     week[model.WeekDays-1],
		FailedUsers: failedUsers,
	}

	lockKey := "leaderboard:" + weekStart.Format("2006-01-02") + ":" + s.now().UTC().Format("2006-01-02")
	result.PostedChannels, result.FailedChannels, result.PostSkipped =
		dispatch(ctx, s.bot, s.locker, lockKey, s.lockTTL, BuildLeaderboardMessage(leaderboard, week, s.theme))

	return result, nil
}

// solvedDays buckets submissions into the 5-day window under the configured
// rule. The two rules are deliberately kept apart; see model.SolvedRule.
func (s *LeaderboardService) solvedDays(submissions []model.Submission, week [model.WeekDays]time.Time, assigned []model.LoggedQuestion) [model.WeekDays]bool {
	var days [model.WeekDays]bool

	switch s.rule {
	case model.RuleAssignedQuestion:
		for i, day := range week {
			for _, q := range assigned {
				if !model.SameDay(q.CreatedAt, day) {
					continue
				}
				for _, sub := range submissions {
					if sub.TitleSlug == q.Slug {
						days[i] = true
						break
					}
				}
			}
		}
	default: // RuleSubmissionDay
		for i, day := range week {
			for _, sub := range submissions {
				if model.SameDay(sub.SubmittedAt, day) {
					days[i] = true
					break
				}
			}
		}
	}

	return days
}
