package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"leetboard/internal/domain/model"
	"leetboard/internal/platform/slackbot"

	"github.com/slack-go/slack"
)

// Theme parameterizes the emoji set used in chat messages. Revisions of the
// bot shipped different emoji; the layout itself never changes.
type Theme struct {
	Solved string
	Missed string
	Crown  string
}

func DefaultTheme() Theme {
	return Theme{Solved: "🟩", Missed: "⬛", Crown: "👑"}
}

const weekdayHeader = "`Ｍ` `Ｔ` `Ｗ` `Ｔ` `Ｆ`"

// BuildLeaderboardMessage renders the weekly leaderboard as a section of
// mrkdwn field pairs (name row, squares row), a date-range context line and a
// divider, matching the layout the bot has always posted.
func BuildLeaderboardMessage(lb model.Leaderboard, week [model.WeekDays]time.Time, theme Theme) slackbot.Message {
	highScorers := make(map[string]bool)
	for _, username := range model.HighScorers(lb) {
		highScorers[username] = true
	}

	usernames := make([]string, 0, len(lb))
	for username := range lb {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "Weekly leaderboard:", false, false),
		slack.NewTextBlockObject(slack.MarkdownType, weekdayHeader, false, false),
	}
	for _, username := range usernames {
		name := "*" + username + "*"
		if highScorers[username] {
			name += " " + theme.Crown
		}

		days := lb[username]
		squares := make([]string, 0, len(days))
		for _, solved := range days {
			if solved {
				squares = append(squares, "`"+theme.Solved+"`")
			} else {
				squares = append(squares, "`"+theme.Missed+"`")
			}
		}

		fields = append(fields,
			slack.NewTextBlockObject(slack.MarkdownType, name, false, false),
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(squares, " "), false, false),
		)
	}

	dateRange := week[0].Format("1/2/2006") + " - " + week[model.WeekDays-1].Format("1/2/2006")

	return slackbot.Message{
		Text: "Leaderboard",
		Blocks: []slack.Block{
			slack.NewSectionBlock(nil, fields, nil),
			slack.NewContextBlock("",
				slack.NewTextBlockObject(slack.MarkdownType, dateRange, false, false)),
			slack.NewDividerBlock(),
		},
	}
}

// BuildDailyQuestionMessage renders the question-of-the-day announcement.
func BuildDailyQuestionMessage(q model.Question) slackbot.Message {
	details := fmt.Sprintf("*Difficulty:* %s\n*Category:* %s\n:thumbsup: %d  :thumbsdown: %d\n<%s|Solve it on LeetCode>",
		q.Difficulty, q.CategoryTitle, q.Likes, q.Dislikes, q.URL())

	return slackbot.Message{
		Text: "Question of the day: " + q.Title,
		Blocks: []slack.Block{
			slack.NewHeaderBlock(
				slack.NewTextBlockObject(slack.PlainTextType, q.Title, true, false)),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, details, false, false), nil, nil),
			slack.NewDividerBlock(),
		},
	}
}
