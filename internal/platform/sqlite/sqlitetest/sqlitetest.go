// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlitetest opens migrated in-memory databases for package tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Open returns a private, fully migrated in-memory database that is closed
// when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath, Logger())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}
