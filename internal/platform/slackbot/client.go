package slackbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// Message is a rendered chat payload: fallback text plus Block Kit blocks.
type Message struct {
	Text   string
	Blocks []slack.Block
}

// Client posts messages to every channel the bot is a member of.
type Client struct {
	api *slack.Client
}

func NewClient(token string, opts ...slack.Option) *Client {
	return &Client{api: slack.New(token, opts...)}
}

// MemberChannels drains conversations.list pagination completely and returns
// the channels the bot is a current member of, excluding archived ones.
func (c *Client) MemberChannels(ctx context.Context) ([]slack.Channel, error) {
	var channels []slack.Channel
	cursor := ""
	for {
		page, next, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Cursor:          cursor,
			ExcludeArchived: true,
			Limit:           200,
		})
		if err != nil {
			return nil, fmt.Errorf("slackbot: list conversations: %w", err)
		}
		for _, ch := range page {
			if ch.IsMember && ch.ID != "" && !ch.IsArchived {
				channels = append(channels, ch)
			}
		}
		if next == "" {
			return channels, nil
		}
		cursor = next
	}
}

// Broadcast posts msg to every member channel. Each post is independent: a
// failed channel is logged and counted but never blocks the remaining posts.
func (c *Client) Broadcast(ctx context.Context, msg Message) (posted, failed int, err error) {
	runID := uuid.NewString()

	channels, err := c.MemberChannels(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, ch := range channels {
		_, _, postErr := c.api.PostMessageContext(ctx, ch.ID,
			slack.MsgOptionText(msg.Text, false),
			slack.MsgOptionBlocks(msg.Blocks...),
		)
		if postErr != nil {
			failed++
			slog.Error("failed to post message to channel",
				"run_id", runID, "channel", ch.ID, "error", postErr)
			continue
		}
		posted++
	}

	slog.Info("dispatch finished",
		"run_id", runID, "channels", len(channels), "posted", posted, "failed", failed)
	return posted, failed, nil
}
