package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"leetboard/internal/domain/model"
)

// A known Wednesday: week runs Mon 2024-03-04 12:00 UTC .. Fri 2024-03-08.
var testNow = time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

func day(dayOfMonth, hour int) time.Time {
	return time.Date(2024, 3, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

type userFetcher struct {
	submissions map[string][]model.Submission
	errs        map[string]error
}

func (f *userFetcher) RecentAcceptedSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error) {
	if err := f.errs[username]; err != nil {
		return nil, err
	}
	return f.submissions[username], nil
}

func TestComputeAndPostRuleSubmissionDay(t *testing.T) {
	fetcher := &userFetcher{submissions: map[string][]model.Submission{
		"alice": {
			{TitleSlug: "two-sum", SubmittedAt: day(4, 14)},    // Monday
			{TitleSlug: "three-sum", SubmittedAt: day(6, 9)},   // Wednesday
			{TitleSlug: "stale-one", SubmittedAt: day(1, 10)},  // before the window
			{TitleSlug: "second-wed", SubmittedAt: day(6, 22)}, // still Wednesday
		},
		"bob": {
			{TitleSlug: "four-sum", SubmittedAt: day(5, 8)}, // Tuesday
		},
	}}
	repo := &memLogRepo{}
	svc := NewLeaderboardService(fetcher, repo, nil, nil, []string{"alice", "bob"}, 10, model.RuleSubmissionDay, time.Hour)
	svc.now = func() time.Time { return testNow }

	result, err := svc.ComputeAndPost(context.Background())
	if err != nil {
		t.Fatalf("ComputeAndPost returned error: %v", err)
	}

	wantStart := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	if !result.WeekStart.Equal(wantStart) {
		t.Fatalf("WeekStart = %v, want %v", result.WeekStart, wantStart)
	}

	if got, want := result.Leaderboard["alice"], ([model.WeekDays]bool{true, false, true, false, false}); got != want {
		t.Fatalf("alice days = %v, want %v", got, want)
	}
	if got, want := result.Leaderboard["bob"], ([model.WeekDays]bool{false, true, false, false, false}); got != want {
		t.Fatalf("bob days = %v, want %v", got, want)
	}
	if len(result.HighScorers) != 1 || result.HighScorers[0] != "alice" {
		t.Fatalf("HighScorers = %v, want [alice]", result.HighScorers)
	}
}

func TestComputeAndPostRuleAssignedQuestion(t *testing.T) {
	// Monday's assigned question is two-sum, Tuesday's is three-sum.
	repo := &memLogRepo{}
	repo.seed("two-sum", day(4, 12))
	repo.seed("three-sum", day(5, 12))

	fetcher := &userFetcher{submissions: map[string][]model.Submission{
		// alice solved Monday's question (on Tuesday, day does not matter)
		// and an unrelated question on Tuesday.
		"alice": {
			{TitleSlug: "two-sum", SubmittedAt: day(5, 9)},
			{TitleSlug: "random-other", SubmittedAt: day(5, 10)},
		},
	}}

	svc := NewLeaderboardService(fetcher, repo, nil, nil, []string{"alice"}, 10, model.RuleAssignedQuestion, time.Hour)
	svc.now = func() time.Time { return testNow }

	result, err := svc.ComputeAndPost(context.Background())
	if err != nil {
		t.Fatalf("ComputeAndPost returned error: %v", err)
	}

	if got, want := result.Leaderboard["alice"], ([model.WeekDays]bool{true, false, false, false, false}); got != want {
		t.Fatalf("alice days = %v, want %v", got, want)
	}

	sort.Strings(result.Questions)
	if len(result.Questions) != 2 || result.Questions[0] != "three-sum" || result.Questions[1] != "two-sum" {
		t.Fatalf("Questions = %v, want the two assigned slugs", result.Questions)
	}
}

func TestComputeAndPostIsolatesPerUserFailure(t *testing.T) {
	fetcher := &userFetcher{
		submissions: map[string][]model.Submission{
			"alice": {{TitleSlug: "two-sum", SubmittedAt: day(4, 14)}},
		},
		errs: map[string]error{"bob": errors.New("leetcode: recentAcSubmissions: connection reset")},
	}

	svc := NewLeaderboardService(fetcher, &memLogRepo{}, nil, nil, []string{"alice", "bob"}, 10, model.RuleSubmissionDay, time.Hour)
	svc.now = func() time.Time { return testNow }

	result, err := svc.ComputeAndPost(context.Background())
	if err != nil {
		t.Fatalf("expected per-user failure to be isolated, got %v", err)
	}

	if _, ok := result.Leaderboard["bob"]; ok {
		t.Fatalf("failed user should be omitted from the leaderboard")
	}
	if _, ok := result.Leaderboard["alice"]; !ok {
		t.Fatalf("healthy user missing from the leaderboard")
	}
	if len(result.FailedUsers) != 1 || result.FailedUsers[0] != "bob" {
		t.Fatalf("FailedUsers = %v, want [bob]", result.FailedUsers)
	}
}

func TestComputeAndPostBroadcastsOncePerWindow(t *testing.T) {
	fetcher := &userFetcher{submissions: map[string][]model.Submission{"alice": nil}}
	bot := &fakeBot{posted: 1}
	locker := &fakeLocker{acquired: true}

	svc := NewLeaderboardService(fetcher, &memLogRepo{}, bot, locker, []string{"alice"}, 10, model.RuleSubmissionDay, time.Hour)
	svc.now = func() time.Time { return testNow }

	result, err := svc.ComputeAndPost(context.Background())
	if err != nil {
		t.Fatalf("ComputeAndPost returned error: %v", err)
	}
	if len(bot.messages) != 1 || result.PostedChannels != 1 {
		t.Fatalf("expected one broadcast, got %d messages / %d posted", len(bot.messages), result.PostedChannels)
	}
	if len(locker.keys) != 1 {
		t.Fatalf("expected one lock acquisition, got %v", locker.keys)
	}
}
