// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package database holds helpers shared by the PostgreSQL and SQLite
// repositories. Table definitions live in the schema subpackage.
package database

import (
	"context"

	"github.com/taibuivan/syncbridge/internal/platform/constants"
)

// WithTimeout bounds a single repository call by [constants.StorageTimeout].
//
// A call that hits the deadline fails with context.DeadlineExceeded, which
// dberr.Wrap turns into a retryable STORAGE_TIMEOUT error. A shorter deadline
// already set by the caller is kept.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, constants.StorageTimeout)
}
