// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite provides the embedded single-node storage backend.
//
// # Architecture
//
// This package is part of the Infrastructure layer, the SQLite counterpart of
// package postgres. It opens a pure-Go (no CGO) database through
// modernc.org/sqlite and applies the embedded schema migrations before
// returning.
//
// SQLite allows a single writer, so the handle is limited to one connection.
// That also serializes every transaction in the process.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/taibuivan/syncbridge/internal/platform/migration"
)

const (
	// DriverName is the database/sql driver registered by modernc.org/sqlite.
	DriverName = "sqlite"
	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
	// busyTimeoutMillis makes concurrent openers wait instead of failing with SQLITE_BUSY.
	busyTimeoutMillis = 5000
)

// Open opens (creating if needed) the database at path and migrates it.
//
// # Parameters
//   - ctx: Context for the initial ping.
//   - path: A filesystem path, or [MemoryPath].
//   - logger: Structured logger for connection and migration events.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(on)&_pragma=busy_timeout(%d)", path, busyTimeoutMillis)
	if path != MemoryPath {
		dsn += "&_pragma=journal_mode(wal)"
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and an in-memory database
	// only lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migration.RunSQLite(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened", slog.String("path", path))

	return db, nil
}

// Ping verifies that the SQLite handle is healthy.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}
