// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/syncbridge/internal/platform/constants"
)

// RedisThrottle implements Throttle with one expiring counter per client IP.
type RedisThrottle struct {
	client *redis.Client
}

// NewRedisThrottle creates a new Redis-backed Throttle.
func NewRedisThrottle(client *redis.Client) *RedisThrottle {
	return &RedisThrottle{client: client}
}

func failureKey(clientIP string) string {
	return constants.RedisPrefixAdminFailures + clientIP
}

/*
Failures reads the counter and its remaining lifetime.

A counter without an expiry cannot come from RecordFailure. It is deleted
and reported as zero so it never turns into a permanent lockout.

Returns:
  - int: Failures inside the current window, 0 when the key is absent
  - time.Duration: Time until the window closes
  - error: Connectivity errors
*/
func (repository *RedisThrottle) Failures(ctx context.Context, clientIP string) (int, time.Duration, error) {
	key := failureKey(clientIP)

	pipe := repository.client.Pipeline()
	countCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, fmt.Errorf("redis_admin_failures_get_failed: %w", err)
	}

	count, err := countCmd.Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("redis_admin_failures_parse_failed: %w", err)
	}

	// TTL reports -1 for a key that exists without an expiry.
	if ttlCmd.Val() == -1 {
		if err := repository.client.Del(ctx, key).Err(); err != nil {
			return 0, 0, fmt.Errorf("redis_admin_failures_delete_failed: %w", err)
		}
		return 0, 0, nil
	}

	return count, max(ttlCmd.Val(), 0), nil
}

/*
RecordFailure increments the counter and arms its expiry in one MULTI/EXEC.

EXPIRE NX only sets the expiry when the key has none, so the window is fixed
from the first failure rather than sliding with each one.
*/
func (repository *RedisThrottle) RecordFailure(ctx context.Context, clientIP string, window time.Duration) (int, error) {
	key := failureKey(clientIP)

	var incrCmd *redis.IntCmd
	_, err := repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incrCmd = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_admin_failures_record_failed: %w", err)
	}

	return int(incrCmd.Val()), nil
}

// Reset deletes the counter.
func (repository *RedisThrottle) Reset(ctx context.Context, clientIP string) error {
	if err := repository.client.Del(ctx, failureKey(clientIP)).Err(); err != nil {
		return fmt.Errorf("redis_admin_failures_delete_failed: %w", err)
	}
	return nil
}
