package model

import (
	"sort"
	"testing"
	"time"
)

func TestStartOfWeekIsAlwaysMondayNoonUTC(t *testing.T) {
	cases := []time.Time{
		time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC),   // Wednesday
		time.Date(2024, 3, 4, 11, 59, 0, 0, time.UTC),  // Monday before noon
		time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),   // Monday at noon
		time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), // Sunday night
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),   // leap day
	}

	for _, now := range cases {
		start := StartOfWeek(now)
		if start.Weekday() != time.Monday {
			t.Fatalf("StartOfWeek(%v) = %v, not a Monday", now, start)
		}
		if start.Hour() != 12 || start.Minute() != 0 || start.Second() != 0 {
			t.Fatalf("StartOfWeek(%v) = %v, not anchored at 12:00 UTC", now, start)
		}
		if start.After(now) {
			t.Fatalf("StartOfWeek(%v) = %v is in the future", now, start)
		}
	}
}

func TestStartOfWeekMondayMorningFallsBackAWeek(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC) // Monday 08:00
	start := StartOfWeek(now)
	want := time.Date(2024, 2, 26, 12, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("StartOfWeek = %v, want %v", start, want)
	}
}

func TestWeekWindowIsFiveConsecutiveDates(t *testing.T) {
	start := StartOfWeek(time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC))
	week := WeekWindow(start)

	if !week[0].Equal(start) {
		t.Fatalf("window does not start at week start: %v vs %v", week[0], start)
	}
	for i := 1; i < WeekDays; i++ {
		if got := week[i].Sub(week[i-1]); got != 24*time.Hour {
			t.Fatalf("day %d is %v after day %d, want 24h", i, got, i-1)
		}
	}
}

func TestHighScorersReturnsAllTiedWinners(t *testing.T) {
	lb := Leaderboard{
		"alice": {true, true, true, false, false},
		"bob":   {false, true, true, false, true},
		"carol": {true, false, false, false, false},
	}

	winners := HighScorers(lb)
	sort.Strings(winners)
	if len(winners) != 2 || winners[0] != "alice" || winners[1] != "bob" {
		t.Fatalf("HighScorers = %v, want [alice bob]", winners)
	}
}

func TestHighScorersSingleWinner(t *testing.T) {
	lb := Leaderboard{
		"alice": {true, true, true, true, false},
		"bob":   {false, true, false, false, false},
	}

	winners := HighScorers(lb)
	if len(winners) != 1 || winners[0] != "alice" {
		t.Fatalf("HighScorers = %v, want [alice]", winners)
	}
}

func TestHighScorersEmptyLeaderboard(t *testing.T) {
	if winners := HighScorers(Leaderboard{}); len(winners) != 0 {
		t.Fatalf("HighScorers on empty board = %v, want none", winners)
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 3, 6, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 3, 6, 23, 59, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("expected %v and %v to share a day", a, b)
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatalf("expected different days to not match")
	}
}
