package service

import (
	"context"
	"log/slog"
	"time"

	"leetboard/internal/platform/slackbot"
)

// Broadcaster posts one message to every member channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg slackbot.Message) (posted, failed int, err error)
}

// DispatchLocker is a best-effort once-per-period lock so a double-fired cron
// invocation does not post the same message twice.
type DispatchLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// dispatch posts msg under the named lock. Chat failures never propagate to
// the caller's HTTP response; they are logged and reported in the counts.
// A nil bot disables posting, a nil locker disables deduplication.
func dispatch(ctx context.Context, bot Broadcaster, locker DispatchLocker, key string, ttl time.Duration, msg slackbot.Message) (posted, failed int, skipped bool) {
	if bot == nil {
		return 0, 0, true
	}

	if locker != nil {
		acquired, err := locker.Acquire(ctx, key, ttl)
		if err != nil {
			// Posting twice beats not posting at all.
			slog.Warn("dispatch lock unavailable, posting anyway", "key", key, "error", err)
		} else if !acquired {
			slog.Info("dispatch already ran, skipping post", "key", key)
			return 0, 0, true
		}
	}

	posted, failed, err := bot.Broadcast(ctx, msg)
	if err != nil {
		slog.Error("failed to broadcast message", "key", key, "error", err)
		return 0, 0, false
	}
	return posted, failed, false
}
