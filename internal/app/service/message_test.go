package service

import (
	"strings"
	"testing"

	"leetboard/internal/domain/model"

	"github.com/slack-go/slack"
)

func TestBuildLeaderboardMessageLayout(t *testing.T) {
	lb := model.Leaderboard{
		"alice": {true, true, false, false, false},
		"bob":   {true, false, false, false, false},
	}
	week := model.WeekWindow(model.StartOfWeek(testNow))

	msg := BuildLeaderboardMessage(lb, week, DefaultTheme())
	if msg.Text != "Leaderboard" {
		t.Fatalf("fallback text = %q, want Leaderboard", msg.Text)
	}
	if len(msg.Blocks) != 3 {
		t.Fatalf("got %d blocks, want section + context + divider", len(msg.Blocks))
	}

	section, ok := msg.Blocks[0].(*slack.SectionBlock)
	if !ok {
		t.Fatalf("first block is %T, want *slack.SectionBlock", msg.Blocks[0])
	}
	// Header pair plus one name/squares pair per user.
	if got, want := len(section.Fields), 2+2*len(lb); got != want {
		t.Fatalf("section has %d fields, want %d", got, want)
	}

	// Usernames are sorted, so alice comes first and wears the crown.
	aliceField := section.Fields[2].Text
	if !strings.Contains(aliceField, "*alice*") || !strings.Contains(aliceField, DefaultTheme().Crown) {
		t.Fatalf("alice field = %q, want bold name with crown", aliceField)
	}
	bobField := section.Fields[4].Text
	if strings.Contains(bobField, DefaultTheme().Crown) {
		t.Fatalf("bob field = %q, should not have a crown", bobField)
	}

	squares := section.Fields[3].Text
	if strings.Count(squares, DefaultTheme().Solved) != 2 || strings.Count(squares, DefaultTheme().Missed) != 3 {
		t.Fatalf("alice squares = %q, want 2 solved and 3 missed", squares)
	}

	context, ok := msg.Blocks[1].(*slack.ContextBlock)
	if !ok {
		t.Fatalf("second block is %T, want *slack.ContextBlock", msg.Blocks[1])
	}
	rangeText, ok := context.ContextElements.Elements[0].(*slack.TextBlockObject)
	if !ok || !strings.Contains(rangeText.Text, "3/4/2024") || !strings.Contains(rangeText.Text, "3/8/2024") {
		t.Fatalf("context = %+v, want the week's date range", context.ContextElements.Elements[0])
	}
}

func TestBuildDailyQuestionMessage(t *testing.T) {
	q := model.Question{
		Title:         "Two Sum",
		TitleSlug:     "two-sum",
		Difficulty:    model.DifficultyEasy,
		CategoryTitle: "Algorithms",
		Likes:         100,
		Dislikes:      3,
		Content:       "<p>x</p>",
	}

	msg := BuildDailyQuestionMessage(q)
	if !strings.Contains(msg.Text, "Two Sum") {
		t.Fatalf("fallback text = %q, want the question title", msg.Text)
	}

	section, ok := msg.Blocks[1].(*slack.SectionBlock)
	if !ok {
		t.Fatalf("second block is %T, want *slack.SectionBlock", msg.Blocks[1])
	}
	if !strings.Contains(section.Text.Text, "https://leetcode.com/problems/two-sum/") {
		t.Fatalf("section = %q, want problem link", section.Text.Text)
	}
	if !strings.Contains(section.Text.Text, "Easy") {
		t.Fatalf("section = %q, want difficulty", section.Text.Text)
	}
}
