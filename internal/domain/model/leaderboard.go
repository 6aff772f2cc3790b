package model

import "time"

// WeekDays is the number of days in the leaderboard window, Monday to Friday.
const WeekDays = 5

// SolvedRule names the predicate that decides whether a user "solved" a given
// weekday. The two rules existed in different revisions of the bot and must
// never be merged.
type SolvedRule string

const (
	// RuleSubmissionDay counts a day as solved when any accepted submission
	// lands on that UTC calendar date, regardless of which question it was.
	RuleSubmissionDay SolvedRule = "submission-day"
	// RuleAssignedQuestion counts a day as solved only when the user
	// submitted the exact slug logged as that day's question.
	RuleAssignedQuestion SolvedRule = "assigned-question"
)

// Leaderboard maps a username to one solved flag per weekday, Monday first.
type Leaderboard map[string][WeekDays]bool

// StartOfWeek returns the most recent Monday at 12:00 UTC that is not after
// now. On a Monday morning this is the previous week's Monday, so the anchor
// never sits in the future.
func StartOfWeek(now time.Time) time.Time {
	now = now.UTC()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, -daysSinceMonday)
	if start.After(now) {
		start = start.AddDate(0, 0, -7)
	}
	return start
}

// WeekWindow returns the 5 consecutive dates starting at start.
func WeekWindow(start time.Time) [WeekDays]time.Time {
	var week [WeekDays]time.Time
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Score is the number of solved days in a row.
func Score(days [WeekDays]bool) int {
	score := 0
	for _, solved := range days {
		if solved {
			score++
		}
	}
	return score
}

// HighScorers returns every username whose solved-day count equals the
// maximum across the leaderboard. Ties produce multiple winners.
func HighScorers(lb Leaderboard) []string {
	high := 0
	for _, days := range lb {
		if s := Score(days); s > high {
			high = s
		}
	}

	var winners []string
	for username, days := range lb {
		if Score(days) == high {
			winners = append(winners, username)
		}
	}
	return winners
}
