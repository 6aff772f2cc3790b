package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker is a best-effort SETNX lock used to deduplicate chat dispatch when
// the cron endpoint fires more than once in a period.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

// Acquire returns true when the caller holds the lock for key. The lock
// expires after ttl; it is never released explicitly.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, "dispatch_lock:"+key, 1, ttl).Result()
}
