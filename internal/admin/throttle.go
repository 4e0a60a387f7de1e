// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"time"
)

// Throttle counts failed admin attempts per client.
type Throttle interface {
	// Failures returns the current failure count and how long until it expires.
	Failures(ctx context.Context, clientIP string) (int, time.Duration, error)

	// RecordFailure increments the count, starting the window on the first failure.
	RecordFailure(ctx context.Context, clientIP string, window time.Duration) (int, error)

	// Reset clears the count after a successful attempt.
	Reset(ctx context.Context, clientIP string) error
}

// NoThrottle is used when no Redis is configured. It never locks anyone out.
type NoThrottle struct{}

func (NoThrottle) Failures(context.Context, string) (int, time.Duration, error) {
	return 0, 0, nil
}

func (NoThrottle) RecordFailure(context.Context, string, time.Duration) (int, error) {
	return 0, nil
}

func (NoThrottle) Reset(context.Context, string) error {
	return nil
}
