package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config defines how many AI generations a client may start per window
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultConfig returns the default rate limit configuration
func DefaultConfig() Config {
	return Config{
		MaxRequests: 5,
		Window:      60 * time.Second,
	}
}

// RateLimiter is a fixed-window counter kept in Redis. A limiter without a
// client allows everything.
type RateLimiter struct {
	rdb    *redis.Client
	config Config
}

// NewRateLimiter creates a limiter; rdb may be nil
func NewRateLimiter(rdb *redis.Client, config Config) *RateLimiter {
	if config.MaxRequests <= 0 || config.Window <= 0 {
		config = DefaultConfig()
	}
	return &RateLimiter{rdb: rdb, config: config}
}

// Enabled reports whether the limiter is backed by Redis
func (rl *RateLimiter) Enabled() bool {
	return rl != nil && rl.rdb != nil
}

// Allow counts one request for client under scope and reports whether it
// is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, scope, client string) (bool, error) {
	if !rl.Enabled() {
		return true, nil
	}

	key := fmt.Sprintf("rate:%s:%s", scope, client)
	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.config.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.config.MaxRequests), nil
}

// Remaining returns how many requests client may still start in the current window
func (rl *RateLimiter) Remaining(ctx context.Context, scope, client string) (int, error) {
	if !rl.Enabled() {
		return rl.config.MaxRequests, nil
	}

	key := fmt.Sprintf("rate:%s:%s", scope, client)
	count, err := rl.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return rl.config.MaxRequests, nil
	} else if err != nil {
		return 0, err
	}
	if count >= rl.config.MaxRequests {
		return 0, nil
	}
	return rl.config.MaxRequests - count, nil
}
