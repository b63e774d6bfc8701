package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = 15 * time.Minute
	maxFailures   = 10
)

// LoginLimiter throttles repeated failed login attempts per identity.
// Key format: login_fail:<identity>, a counter expiring after failureWindow.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Allow reports whether another login attempt is permitted for identity.
func (l *LoginLimiter) Allow(ctx context.Context, identity string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(identity)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n < maxFailures, nil
}

// RecordFailure increments the failure counter, starting the expiry window on
// the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, identity string) error {
	key := l.key(identity)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, failureWindow).Err(); err != nil {
			return fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identity string) error {
	return l.client.Del(ctx, l.key(identity)).Err()
}

func (l *LoginLimiter) key(identity string) string {
	return "login_fail:" + identity
}
