// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/middleware"
)

// ErrInvalidCredentials never says which half of the credential was wrong.
var ErrInvalidCredentials = middleware.ErrAdminCredentials

// Service verifies admin credentials behind the failed-attempt throttle.
type Service struct {
	gate        *Gate
	throttle    Throttle
	maxFailures int
	window      time.Duration
	logger      *slog.Logger
}

// NewService wires the gate to a throttle. Pass [NoThrottle] to disable the
// lockout.
func NewService(gate *Gate, throttle Throttle, maxFailures int, window time.Duration, logger *slog.Logger) *Service {
	return &Service{
		gate:        gate,
		throttle:    throttle,
		maxFailures: maxFailures,
		window:      window,
		logger:      logger,
	}
}

/*
Verify checks one admin attempt from clientIP.

Throttle errors are logged and the attempt is judged on the credential alone,
so a Redis outage never locks the administrator out.

Parameters:
  - context: context.Context
  - username: string
  - password: string
  - clientIP: string (Throttle key)

Returns:
  - error: nil, ErrInvalidCredentials (401), or RateLimited (429) while locked out
*/
func (service *Service) Verify(context context.Context, username, password, clientIP string) error {

	// ── 1. Lockout Check ─────────────────────────────────────────────────
	failures, remaining, err := service.throttle.Failures(context, clientIP)
	if err != nil {
		service.logger.Warn("admin_throttle_unavailable", slog.Any("error", err))
	} else if failures >= service.maxFailures {
		service.logger.Warn("admin_locked_out",
			slog.String("ip", clientIP),
			slog.Int("failures", failures),
		)
		return apperr.RateLimited(retryAfterSeconds(remaining))
	}

	// ── 2. Credential Check ──────────────────────────────────────────────
	if service.gate.Authenticate(username, password) {
		if failures > 0 {
			if err := service.throttle.Reset(context, clientIP); err != nil {
				service.logger.Warn("admin_throttle_reset_failed", slog.Any("error", err))
			}
		}
		return nil
	}

	// ── 3. Failure Accounting ────────────────────────────────────────────
	attempts, err := service.throttle.RecordFailure(context, clientIP, service.window)
	if err != nil {
		service.logger.Warn("admin_throttle_unavailable", slog.Any("error", err))
	}

	service.logger.Warn("admin_auth_failed",
		slog.String("ip", clientIP),
		slog.Int("attempts", attempts),
	)
	return ErrInvalidCredentials
}

// retryAfterSeconds rounds up and never reports less than one second.
func retryAfterSeconds(remaining time.Duration) int {
	return max(int(math.Ceil(remaining.Seconds())), 1)
}
