// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guardian

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/syncbridge/internal/platform/database"
	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
	"github.com/taibuivan/syncbridge/pkg/uuid"
)

// SQLiteRepository stores guardians in the embedded database. The handle
// has a single connection, so its transactions never interleave.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var liteSelectGuardian = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Guardian.Columns()), schema.Guardian.Table)

func (repository *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectGuardian + fmt.Sprintf(` WHERE %s = ?`, schema.Guardian.Email)
	guardian, err := scanSQLiteGuardian(repository.db.QueryRowContext(ctx, query, email))
	return guardian, dberr.Wrap(err, "find_guardian_by_email")
}

func (repository *SQLiteRepository) FindByScrollID(ctx context.Context, scrollID string) (*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectGuardian + fmt.Sprintf(` WHERE %s = ?`, schema.Guardian.ScrollID)
	guardian, err := scanSQLiteGuardian(repository.db.QueryRowContext(ctx, query, scrollID))
	return guardian, dberr.Wrap(err, "find_guardian_by_scroll_id")
}

func (repository *SQLiteRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Guardian.Table)
	err := repository.db.QueryRowContext(ctx, query).Scan(&total)
	return total, dberr.Wrap(err, "count_guardians")
}

func (repository *SQLiteRepository) List(ctx context.Context) ([]*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectGuardian + fmt.Sprintf(` ORDER BY %s ASC`, schema.Guardian.Ordinal)
	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_guardians")
	}
	defer rows.Close()

	var guardians []*Guardian
	for rows.Next() {
		guardian, err := scanSQLiteGuardian(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_guardian")
		}
		guardians = append(guardians, guardian)
	}

	return guardians, dberr.Wrap(rows.Err(), "list_guardians")
}

// Create reserves the next ordinal and inserts the guardian atomically. The
// transaction must not touch repository.db: the only connection is held by it.
func (repository *SQLiteRepository) Create(ctx context.Context, guardian *Guardian) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.BeginTx(ctx, nil)
	if err != nil {
		return dberr.Wrap(err, "begin_create_guardian")
	}
	defer transaction.Rollback()

	// ── 1. Reserve Ordinal ───────────────────────────────────────────────
	reserve := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = 1 RETURNING %s`,
		schema.GuardianSequence.Table, schema.GuardianSequence.LastOrdinal, schema.GuardianSequence.LastOrdinal,
		schema.GuardianSequence.ID, schema.GuardianSequence.LastOrdinal,
	)
	if err := transaction.QueryRowContext(ctx, reserve).Scan(&guardian.Ordinal); err != nil {
		return dberr.Wrap(err, "reserve_guardian_ordinal")
	}
	guardian.ScrollID = FormatScrollID(guardian.Ordinal)
	if guardian.ID == "" {
		guardian.ID = newID()
	}

	// ── 2. Insert Guardian ───────────────────────────────────────────────
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Guardian.Table, schema.List(schema.Guardian.Columns()), schema.Placeholders(6, false),
	)
	_, err = transaction.ExecContext(ctx, insert,
		guardian.ID, guardian.Ordinal, guardian.ScrollID, guardian.Email, guardian.IsCertified,
		sqlite.FormatTime(guardian.RegisteredAt),
	)
	if err != nil {
		return dberr.Wrap(err, "insert_guardian")
	}

	return dberr.Wrap(transaction.Commit(), "commit_create_guardian")
}

func scanSQLiteGuardian(row interface{ Scan(...any) error }) (*Guardian, error) {
	guardian := &Guardian{}
	var registeredAt string
	err := row.Scan(
		&guardian.ID, &guardian.Ordinal, &guardian.ScrollID, &guardian.Email,
		&guardian.IsCertified, &registeredAt,
	)
	if err != nil {
		return nil, err
	}
	if guardian.RegisteredAt, err = sqlite.ParseTime(registeredAt); err != nil {
		return nil, err
	}
	return guardian, nil
}

func newID() string {
	return uuid.New()
}
