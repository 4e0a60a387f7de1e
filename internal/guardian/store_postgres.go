// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guardian

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/syncbridge/internal/platform/database"
	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var pgSelectGuardian = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Guardian.Columns()), schema.Guardian.Table)

func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectGuardian + fmt.Sprintf(` WHERE %s = $1`, schema.Guardian.Email)
	guardian, err := scanGuardian(repository.db.QueryRow(ctx, query, email))
	return guardian, dberr.Wrap(err, "find_guardian_by_email")
}

func (repository *PostgresRepository) FindByScrollID(ctx context.Context, scrollID string) (*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectGuardian + fmt.Sprintf(` WHERE %s = $1`, schema.Guardian.ScrollID)
	guardian, err := scanGuardian(repository.db.QueryRow(ctx, query, scrollID))
	return guardian, dberr.Wrap(err, "find_guardian_by_scroll_id")
}

func (repository *PostgresRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Guardian.Table)
	err := repository.db.QueryRow(ctx, query).Scan(&total)
	return total, dberr.Wrap(err, "count_guardians")
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Guardian, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectGuardian + fmt.Sprintf(` ORDER BY %s ASC`, schema.Guardian.Ordinal)
	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_guardians")
	}
	defer rows.Close()

	var guardians []*Guardian
	for rows.Next() {
		guardian, err := scanGuardian(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_guardian")
		}
		guardians = append(guardians, guardian)
	}

	return guardians, dberr.Wrap(rows.Err(), "list_guardians")
}

/*
Create reserves the next ordinal and inserts the guardian atomically.

The UPDATE on the single sequence row takes a row lock that is held until
commit, so concurrent registrations queue behind each other. A failed insert
rolls the increment back, keeping ordinals gap-free.
*/
func (repository *PostgresRepository) Create(ctx context.Context, guardian *Guardian) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_guardian")
	}
	defer transaction.Rollback(ctx)

	// ── 1. Reserve Ordinal ───────────────────────────────────────────────
	reserve := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = 1 RETURNING %s`,
		schema.GuardianSequence.Table, schema.GuardianSequence.LastOrdinal, schema.GuardianSequence.LastOrdinal,
		schema.GuardianSequence.ID, schema.GuardianSequence.LastOrdinal,
	)
	if err := transaction.QueryRow(ctx, reserve).Scan(&guardian.Ordinal); err != nil {
		return dberr.Wrap(err, "reserve_guardian_ordinal")
	}
	guardian.ScrollID = FormatScrollID(guardian.Ordinal)
	if guardian.ID == "" {
		guardian.ID = newID()
	}

	// ── 2. Insert Guardian ───────────────────────────────────────────────
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Guardian.Table, schema.List(schema.Guardian.Columns()), schema.Placeholders(6, true),
	)
	_, err = transaction.Exec(ctx, insert,
		guardian.ID, guardian.Ordinal, guardian.ScrollID, guardian.Email, guardian.IsCertified, guardian.RegisteredAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_guardian")
	}

	return dberr.Wrap(transaction.Commit(ctx), "commit_create_guardian")
}

func scanGuardian(row pgx.Row) (*Guardian, error) {
	guardian := &Guardian{}
	err := row.Scan(
		&guardian.ID, &guardian.Ordinal, &guardian.ScrollID, &guardian.Email,
		&guardian.IsCertified, &guardian.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	guardian.RegisteredAt = guardian.RegisteredAt.UTC()
	return guardian, nil
}
