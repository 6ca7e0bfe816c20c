package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"anoa.com/placementportal/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// RateLimitError carries how long the caller should wait before retrying.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

// Limiter is a fixed-window counter kept in Redis. A nil client allows everything.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func New(rdb *redis.Client, limit int64, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

func key(action, subject string) string {
	return fmt.Sprintf("rate_limit:%s:%s", action, subject)
}

// Allow counts one attempt for subject and fails with *RateLimitError once the
// window's budget is spent.
func (l *Limiter) Allow(ctx context.Context, action, subject string) error {
	if l == nil || l.rdb == nil || l.limit <= 0 {
		return nil
	}

	k := key(action, subject)

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count > l.limit {
		ttl, err := l.rdb.TTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return &RateLimitError{
			Message:    fmt.Sprintf("too many %s attempts, try again later", action),
			RetryAfter: ttl,
		}
	}

	return nil
}

// Reset clears the counter, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, action, subject string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(action, subject)).Err()
}
