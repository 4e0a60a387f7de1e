// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/syncbridge/internal/platform/database"
	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/pkg/money"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	pgSelectOrder = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Order.Columns()), schema.Order.Table)

	pgInsertOrder = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Order.Table, schema.List(schema.Order.Columns()), schema.Placeholders(len(schema.Order.Columns()), true),
	)

	pgInsertItem = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.OrderItem.Table, schema.List(schema.OrderItem.Columns()), schema.Placeholders(len(schema.OrderItem.Columns()), true),
	)

	pgInsertHistory = fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.OrderStatusHistory.Table,
		schema.OrderStatusHistory.OrderID, schema.OrderStatusHistory.FromStatus, schema.OrderStatusHistory.ToStatus,
		schema.OrderStatusHistory.ChangedBy, schema.OrderStatusHistory.ChangedAt,
	)
)

/*
Create stores the order, its lines and the submission history entry.

All three writes share one transaction, so a failure leaves no trace.
*/
func (repository *PostgresRepository) Create(ctx context.Context, order *Order) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_order")
	}
	defer transaction.Rollback(ctx)

	// ── 1. Order Header ──────────────────────────────────────────────────
	_, err = transaction.Exec(ctx, pgInsertOrder,
		order.ID, order.ScrollID, order.Email,
		order.Name, order.Address, order.City, order.State, order.Zip, order.Country,
		order.TotalAmount.Cents(), string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_order")
	}

	// ── 2. Order Lines ───────────────────────────────────────────────────
	for position, item := range order.Items {
		_, err = transaction.Exec(ctx, pgInsertItem,
			order.ID, position, item.ProductType, item.ProductName, item.Size,
			item.Quantity, item.UnitPrice.Cents(), item.LineTotal.Cents(),
		)
		if err != nil {
			return dberr.Wrap(err, "insert_order_item")
		}
	}

	// ── 3. Audit Trail ───────────────────────────────────────────────────
	for _, change := range order.History {
		_, err = transaction.Exec(ctx, pgInsertHistory,
			order.ID, nullableStatus(change.From), string(change.To), change.ChangedBy, change.ChangedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_order_history")
		}
	}

	return dberr.Wrap(transaction.Commit(ctx), "commit_create_order")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectOrder + fmt.Sprintf(` WHERE %s = $1`, schema.Order.ID)
	order, err := scanOrder(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_order")
	}

	orders := []*Order{order}
	if err := repository.loadDetails(ctx, orders); err != nil {
		return nil, err
	}
	return order, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := pgSelectOrder + fmt.Sprintf(` ORDER BY %s DESC, %s DESC`, schema.Order.CreatedAt, schema.Order.ID)
	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_orders")
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_order")
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_orders")
	}

	if len(orders) == 0 {
		return orders, nil
	}
	if err := repository.loadDetails(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

/*
UpdateStatus writes the new status only if the row still holds update.From,
then appends the history entry, both in one transaction.
*/
func (repository *PostgresRepository) UpdateStatus(ctx context.Context, update StatusUpdate) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_update_order_status")
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
		schema.Order.Table, schema.Order.Status, schema.Order.UpdatedAt, schema.Order.ID, schema.Order.Status,
	)
	cmd, err := transaction.Exec(ctx, query, update.OrderID, string(update.From), string(update.To), update.ChangedAt)
	if err != nil {
		return dberr.Wrap(err, "update_order_status")
	}
	if cmd.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}

	from := update.From
	_, err = transaction.Exec(ctx, pgInsertHistory,
		update.OrderID, nullableStatus(&from), string(update.To), update.ChangedBy, update.ChangedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_order_history")
	}

	return dberr.Wrap(transaction.Commit(ctx), "commit_update_order_status")
}

// loadDetails fetches items and history for all orders in two queries.
func (repository *PostgresRepository) loadDetails(ctx context.Context, orders []*Order) error {
	ids := orderIDs(orders)

	// ── Items ────────────────────────────────────────────────────────────
	itemQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1::uuid[])
		ORDER BY %s, %s
	`,
		schema.OrderItem.OrderID, schema.OrderItem.ProductType, schema.OrderItem.ProductName, schema.OrderItem.Size,
		schema.OrderItem.Quantity, schema.OrderItem.UnitPriceCents, schema.OrderItem.LineTotalCents,
		schema.OrderItem.Table,
		schema.OrderItem.OrderID,
		schema.OrderItem.OrderID, schema.OrderItem.Position,
	)

	rows, err := repository.db.Query(ctx, itemQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_order_items")
	}
	items := make(map[string][]Item, len(orders))
	for rows.Next() {
		var (
			orderID               string
			item                  Item
			unitCents, totalCents int64
		)
		if err := rows.Scan(&orderID, &item.ProductType, &item.ProductName, &item.Size, &item.Quantity, &unitCents, &totalCents); err != nil {
			rows.Close()
			return dberr.Wrap(err, "scan_order_item")
		}
		item.UnitPrice = money.FromCents(unitCents)
		item.LineTotal = money.FromCents(totalCents)
		items[orderID] = append(items[orderID], item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_order_items")
	}

	// ── History ──────────────────────────────────────────────────────────
	historyQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1::uuid[])
		ORDER BY %s
	`,
		schema.OrderStatusHistory.OrderID, schema.OrderStatusHistory.FromStatus, schema.OrderStatusHistory.ToStatus,
		schema.OrderStatusHistory.ChangedBy, schema.OrderStatusHistory.ChangedAt,
		schema.OrderStatusHistory.Table,
		schema.OrderStatusHistory.OrderID,
		schema.OrderStatusHistory.ID,
	)

	rows, err = repository.db.Query(ctx, historyQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_order_history")
	}
	defer rows.Close()

	history := make(map[string][]StatusChange, len(orders))
	for rows.Next() {
		var (
			orderID string
			from    *string
			to      string
			change  StatusChange
		)
		if err := rows.Scan(&orderID, &from, &to, &change.ChangedBy, &change.ChangedAt); err != nil {
			return dberr.Wrap(err, "scan_order_history")
		}
		change.From = statusPointer(from)
		change.To = Status(to)
		change.ChangedAt = change.ChangedAt.UTC()
		history[orderID] = append(history[orderID], change)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_order_history")
	}

	attach(orders, items, history)
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	order := &Order{}
	var (
		totalCents int64
		status     string
	)
	err := row.Scan(
		&order.ID, &order.ScrollID, &order.Email,
		&order.Name, &order.Address, &order.City, &order.State, &order.Zip, &order.Country,
		&totalCents, &status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.TotalAmount = money.FromCents(totalCents)
	order.Status = Status(status)
	order.CreatedAt = order.CreatedAt.UTC()
	order.UpdatedAt = order.UpdatedAt.UTC()
	return order, nil
}
