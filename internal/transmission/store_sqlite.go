// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transmission

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/syncbridge/internal/platform/database"
	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var liteSelectTransmission = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Transmission.Columns()), schema.Transmission.Table)

func (repository *SQLiteRepository) List(ctx context.Context) ([]*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectTransmission + fmt.Sprintf(` ORDER BY %s ASC`, schema.Transmission.DayNumber)
	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_transmissions")
	}
	defer rows.Close()

	var transmissions []*Transmission
	for rows.Next() {
		transmission, err := scanSQLiteTransmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_transmission")
		}
		transmissions = append(transmissions, transmission)
	}

	return transmissions, dberr.Wrap(rows.Err(), "list_transmissions")
}

func (repository *SQLiteRepository) Latest(ctx context.Context) (*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectTransmission + fmt.Sprintf(` ORDER BY %s DESC LIMIT 1`, schema.Transmission.DayNumber)
	transmission, err := scanSQLiteTransmission(repository.db.QueryRowContext(ctx, query))
	return transmission, dberr.Wrap(err, "latest_transmission")
}

func (repository *SQLiteRepository) Get(ctx context.Context, id string) (*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectTransmission + fmt.Sprintf(` WHERE %s = ?`, schema.Transmission.ID)
	transmission, err := scanSQLiteTransmission(repository.db.QueryRowContext(ctx, query, id))
	return transmission, dberr.Wrap(err, "get_transmission")
}

func (repository *SQLiteRepository) DayTaken(ctx context.Context, day int, excludeID string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ? AND %s <> ?)`,
		schema.Transmission.Table, schema.Transmission.DayNumber, schema.Transmission.ID,
	)

	var taken bool
	err := repository.db.QueryRowContext(ctx, query, day, excludeID).Scan(&taken)
	return taken, dberr.Wrap(err, "check_transmission_day")
}

func (repository *SQLiteRepository) Create(ctx context.Context, transmission *Transmission) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Transmission.Table, schema.List(schema.Transmission.Columns()), schema.Placeholders(7, false),
	)
	_, err := repository.db.ExecContext(ctx, query,
		transmission.ID, transmission.DayNumber, transmission.Title, transmission.Description,
		transmission.VideoURL, sqlite.FormatTime(transmission.CreatedAt), sqlite.FormatTime(transmission.UpdatedAt),
	)
	return dberr.Wrap(err, "create_transmission")
}

func (repository *SQLiteRepository) Update(ctx context.Context, transmission *Transmission) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ?
		WHERE %s = ?
		RETURNING %s
	`,
		schema.Transmission.Table,
		schema.Transmission.DayNumber, schema.Transmission.Title, schema.Transmission.Description,
		schema.Transmission.VideoURL, schema.Transmission.UpdatedAt,
		schema.Transmission.ID,
		schema.Transmission.CreatedAt,
	)

	var createdAt string
	err := repository.db.QueryRowContext(ctx, query,
		transmission.DayNumber, transmission.Title, transmission.Description,
		transmission.VideoURL, sqlite.FormatTime(transmission.UpdatedAt),
		transmission.ID,
	).Scan(&createdAt)
	if err != nil {
		return dberr.Wrap(err, "update_transmission")
	}

	transmission.CreatedAt, err = sqlite.ParseTime(createdAt)
	return dberr.Wrap(err, "update_transmission")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.Transmission.Table, schema.Transmission.ID)
	result, err := repository.db.ExecContext(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_transmission")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_transmission")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanSQLiteTransmission(row interface{ Scan(...any) error }) (*Transmission, error) {
	transmission := &Transmission{}
	var createdAt, updatedAt string
	err := row.Scan(
		&transmission.ID, &transmission.DayNumber, &transmission.Title, &transmission.Description,
		&transmission.VideoURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if transmission.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if transmission.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return transmission, nil
}
