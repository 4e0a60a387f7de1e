// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestOpen_MemoryMigrates verifies the schema and the sequence seed row exist.
*/
func TestOpen_MemoryMigrates(t *testing.T) {
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath, discardLogger())
	require.NoError(t, err)
	defer db.Close()

	var lastOrdinal int
	require.NoError(t, db.QueryRow(`SELECT last_ordinal FROM guardian_sequence WHERE id = 1`).Scan(&lastOrdinal))
	assert.Equal(t, 0, lastOrdinal)

	for _, table := range []string{"guardian", "transmission", "merch_order", "merch_order_item", "merch_order_status_history"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

/*
TestOpen_FileIsReopenable verifies migrations are idempotent across restarts.
*/
func TestOpen_FileIsReopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "syncbridge.db")

	first, err := sqlite.Open(context.Background(), path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(context.Background(), path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

/*
TestTimeRoundTrip verifies the fixed-width layout sorts as text.
*/
func TestTimeRoundTrip(t *testing.T) {
	earlier := time.Date(2026, 2, 22, 10, 0, 0, 5, time.UTC)
	later := earlier.Add(time.Millisecond)

	parsed, err := sqlite.ParseTime(sqlite.FormatTime(earlier))
	require.NoError(t, err)
	assert.True(t, earlier.Equal(parsed))

	assert.Less(t, sqlite.FormatTime(earlier), sqlite.FormatTime(later))

	_, err = sqlite.ParseTime("yesterday")
	assert.Error(t, err)
}
