// Package redisusage stores monthly analysis counters in Redis.
package redisusage

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// keyTTL outlives the calendar month the counter belongs to, so stale keys
// clean themselves up without a cron.
const keyTTL = 62 * 24 * time.Hour

// Repo implements domain.UsageRepository on a Redis client.
type Repo struct {
	rdb *redis.Client
	// now is swappable for tests that pin the month boundary.
	now func() time.Time
}

// New constructs a Repo.
func New(rdb *redis.Client) *Repo {
	return &Repo{rdb: rdb, now: time.Now}
}

func (r *Repo) key(user string) string {
	return fmt.Sprintf("usage:%s:%s", user, r.now().UTC().Format("2006-01"))
}

// Increment bumps the user's counter for the current month and returns the
// new count. The TTL is set on first use of each key.
func (r *Repo) Increment(ctx domain.Context, user string) (int, error) {
	key := r.key(user)
	n, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("op=redisusage.Increment: %w", err)
	}
	if n == 1 {
		if err := r.rdb.Expire(ctx, key, keyTTL).Err(); err != nil {
			return 0, fmt.Errorf("op=redisusage.Increment expire: %w", err)
		}
	}
	return int(n), nil
}

// Count returns the user's counter for the current month; a missing key
// counts as zero.
func (r *Repo) Count(ctx domain.Context, user string) (int, error) {
	n, err := r.rdb.Get(ctx, r.key(user)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("op=redisusage.Count: %w", err)
	}
	return n, nil
}
