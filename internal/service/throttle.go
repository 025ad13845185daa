package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "login_attempts:"

// LoginThrottle bounds login attempts per (username, client IP) within a
// fixed window, backed by Redis. A Redis outage fails open: throttling is a
// hardening layer and must never lock the club out of its own service.
type LoginThrottle struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, max: max, window: window, logger: logger}
}

// Allow records an attempt and reports whether it is within the limit.
func (t *LoginThrottle) Allow(ctx context.Context, username, clientIP string) bool {
	if t == nil || t.client == nil || t.max <= 0 {
		return true
	}

	key := throttleKeyPrefix + username + ":" + clientIP
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Warn("login throttle expire failed", zap.Error(err))
		}
	}
	return count <= int64(t.max)
}
