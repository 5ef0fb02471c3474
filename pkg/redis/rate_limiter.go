package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimitExceeded is returned when a credential has used up its hourly quota
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

const (
	// rateLimitWindow is the fixed bucket size for request counters
	rateLimitWindow = time.Hour
	// rateLimitKeyTTL keeps a bucket alive past its own hour so a request
	// arriving at the boundary still sees a live counter
	rateLimitKeyTTL = 2 * time.Hour
)

// RateLimiter tracks requests per hour per credential against Redis.
// Counters live in fixed hour buckets; a new bucket starts when the
// wall-clock hour rolls over, so the previous count becomes irrelevant
// without explicit cleanup.
type RateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRateLimiter creates a rate limiter backed by the given Redis client
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: client,
		now:    time.Now,
	}
}

// Admit atomically admits one request for identity within the current hour
// bucket. INCR is atomic server-side, so two concurrent requests can never
// both observe count == limit-1 and both pass. A rejected request is rolled
// back with DECR so denials never consume quota.
func (r *RateLimiter) Admit(ctx context.Context, identity string, limit int) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}

	bucket := r.now().Unix() / int64(rateLimitWindow/time.Second)
	key := fmt.Sprintf("ratelimit:%s:%d", identity, bucket)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("rate limit store: %w", err)
	}
	if count == 1 {
		// First hit in this bucket; bound its lifetime.
		if err := r.client.Expire(ctx, key, rateLimitKeyTTL).Err(); err != nil {
			return 0, fmt.Errorf("rate limit store: %w", err)
		}
	}

	if count > int64(limit) {
		// No partial credit for rejected requests.
		_ = r.client.Decr(ctx, key).Err()
		return 0, ErrRateLimitExceeded
	}

	return count, nil
}

// Usage returns the current count for identity in the active hour bucket
func (r *RateLimiter) Usage(ctx context.Context, identity string) (int64, error) {
	bucket := r.now().Unix() / int64(rateLimitWindow/time.Second)
	key := fmt.Sprintf("ratelimit:%s:%d", identity, bucket)

	count, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("rate limit store: %w", err)
	}
	return count, nil
}

// SetNowFunc overrides the clock (used for testing bucket rollover)
func (r *RateLimiter) SetNowFunc(now func() time.Time) {
	r.now = now
}
