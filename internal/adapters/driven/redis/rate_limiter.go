package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

const ratePrefix = "authcore:rate:"

// RateLimiter implements a fixed-window counter over Redis INCR with
// a TTL on the window key. Shared across instances, so the budget
// holds fleet-wide.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a Redis-backed rate limiter allowing limit
// hits per key per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within budget.
// The first hit in a window sets the key's TTL; the counter and TTL
// are applied in one pipeline so a crash between them cannot leave an
// immortal counter.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := ratePrefix + key

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, windowKey)
	pipe.ExpireNX(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	return count.Val() <= l.limit, nil
}
