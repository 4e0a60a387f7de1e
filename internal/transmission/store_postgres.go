// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transmission

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

var pgSelectTransmission = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Transmission.Columns()), schema.Transmission.Table)

func (repository *PostgresRepository) List(ctx context.Context) ([]*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectTransmission + fmt.Sprintf(` ORDER BY %s ASC`, schema.Transmission.DayNumber)
	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_transmissions")
	}
	defer rows.Close()

	var transmissions []*Transmission
	for rows.Next() {
		transmission, err := scanTransmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_transmission")
		}
		transmissions = append(transmissions, transmission)
	}

	return transmissions, dberr.Wrap(rows.Err(), "list_transmissions")
}

func (repository *PostgresRepository) Latest(ctx context.Context) (*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectTransmission + fmt.Sprintf(` ORDER BY %s DESC LIMIT 1`, schema.Transmission.DayNumber)
	transmission, err := scanTransmission(repository.db.QueryRow(ctx, query))
	return transmission, dberr.Wrap(err, "latest_transmission")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Transmission, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectTransmission + fmt.Sprintf(` WHERE %s = $1`, schema.Transmission.ID)
	transmission, err := scanTransmission(repository.db.QueryRow(ctx, query, id))
	return transmission, dberr.Wrap(err, "get_transmission")
}

func (repository *PostgresRepository) DayTaken(ctx context.Context, day int, excludeID string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	// An empty excludeID never matches: ids are never NULL.
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s::text <> $2)`,
		schema.Transmission.Table, schema.Transmission.DayNumber, schema.Transmission.ID,
	)

	var taken bool
	err := repository.db.QueryRow(ctx, query, day, excludeID).Scan(&taken)
	return taken, dberr.Wrap(err, "check_transmission_day")
}

func (repository *PostgresRepository) Create(ctx context.Context, transmission *Transmission) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Transmission.Table, schema.List(schema.Transmission.Columns()), schema.Placeholders(7, true),
	)
	_, err := repository.db.Exec(ctx, query,
		transmission.ID, transmission.DayNumber, transmission.Title, transmission.Description,
		transmission.VideoURL, transmission.CreatedAt, transmission.UpdatedAt,
	)
	return dberr.Wrap(err, "create_transmission")
}

func (repository *PostgresRepository) Update(ctx context.Context, transmission *Transmission) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Transmission.Table,
		schema.Transmission.DayNumber, schema.Transmission.Title, schema.Transmission.Description,
		schema.Transmission.VideoURL, schema.Transmission.UpdatedAt,
		schema.Transmission.ID,
		schema.Transmission.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		transmission.ID, transmission.DayNumber, transmission.Title, transmission.Description,
		transmission.VideoURL, transmission.UpdatedAt,
	).Scan(&transmission.CreatedAt)
	transmission.CreatedAt = transmission.CreatedAt.UTC()

	return dberr.Wrap(err, "update_transmission")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Transmission.Table, schema.Transmission.ID)
	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_transmission")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanTransmission(row pgx.Row) (*Transmission, error) {
	transmission := &Transmission{}
	err := row.Scan(
		&transmission.ID, &transmission.DayNumber, &transmission.Title, &transmission.Description,
		&transmission.VideoURL, &transmission.CreatedAt, &transmission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	transmission.CreatedAt = transmission.CreatedAt.UTC()
	transmission.UpdatedAt = transmission.UpdatedAt.UTC()
	return transmission, nil
}
