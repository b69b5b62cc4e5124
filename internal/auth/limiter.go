package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter bounds login attempts per key within a rolling window, backed
// by redis so limits hold across instances. A nil client disables limiting.
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter constructs a LoginLimiter.
func NewLoginLimiter(client *redis.Client, max int64, window time.Duration) *LoginLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// Allow reports whether another attempt is permitted for the key.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	redisKey := fmt.Sprintf("login_attempts:%s", key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.max, nil
}
