// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/syncbridge/internal/platform/database"
	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
	"github.com/taibuivan/syncbridge/pkg/money"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var (
	liteSelectOrder = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Order.Columns()), schema.Order.Table)

	liteInsertOrder = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Order.Table, schema.List(schema.Order.Columns()), schema.Placeholders(len(schema.Order.Columns()), false),
	)

	liteInsertItem = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.OrderItem.Table, schema.List(schema.OrderItem.Columns()), schema.Placeholders(len(schema.OrderItem.Columns()), false),
	)

	liteInsertHistory = fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?)`,
		schema.OrderStatusHistory.Table,
		schema.OrderStatusHistory.OrderID, schema.OrderStatusHistory.FromStatus, schema.OrderStatusHistory.ToStatus,
		schema.OrderStatusHistory.ChangedBy, schema.OrderStatusHistory.ChangedAt,
	)
)

// Create stores the order, its lines and the submission history entry in
// one transaction.
func (repository *SQLiteRepository) Create(ctx context.Context, order *Order) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.BeginTx(ctx, nil)
	if err != nil {
		return dberr.Wrap(err, "begin_create_order")
	}
	defer transaction.Rollback()

	// ── 1. Order Header ──────────────────────────────────────────────────
	_, err = transaction.ExecContext(ctx, liteInsertOrder,
		order.ID, order.ScrollID, order.Email,
		order.Name, order.Address, order.City, order.State, order.Zip, order.Country,
		order.TotalAmount.Cents(), string(order.Status),
		sqlite.FormatTime(order.CreatedAt), sqlite.FormatTime(order.UpdatedAt),
	)
	if err != nil {
		return dberr.Wrap(err, "insert_order")
	}

	// ── 2. Order Lines ───────────────────────────────────────────────────
	for position, item := range order.Items {
		_, err = transaction.ExecContext(ctx, liteInsertItem,
			order.ID, position, item.ProductType, item.ProductName, item.Size,
			item.Quantity, item.UnitPrice.Cents(), item.LineTotal.Cents(),
		)
		if err != nil {
			return dberr.Wrap(err, "insert_order_item")
		}
	}

	// ── 3. Audit Trail ───────────────────────────────────────────────────
	for _, change := range order.History {
		_, err = transaction.ExecContext(ctx, liteInsertHistory,
			order.ID, nullableStatus(change.From), string(change.To), change.ChangedBy, sqlite.FormatTime(change.ChangedAt),
		)
		if err != nil {
			return dberr.Wrap(err, "insert_order_history")
		}
	}

	return dberr.Wrap(transaction.Commit(), "commit_create_order")
}

func (repository *SQLiteRepository) Get(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectOrder + fmt.Sprintf(` WHERE %s = ?`, schema.Order.ID)
	order, err := scanSQLiteOrder(repository.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_order")
	}

	if err := repository.loadDetails(ctx, []*Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (repository *SQLiteRepository) List(ctx context.Context) ([]*Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := liteSelectOrder + fmt.Sprintf(` ORDER BY %s DESC, %s DESC`, schema.Order.CreatedAt, schema.Order.ID)
	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_orders")
	}

	var orders []*Order
	for rows.Next() {
		order, err := scanSQLiteOrder(rows)
		if err != nil {
			rows.Close()
			return nil, dberr.Wrap(err, "scan_order")
		}
		orders = append(orders, order)
	}
	// Release the connection before loading details: the handle has only one.
	rows.Close()
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

// UpdateStatus applies the compare-and-set and appends the history entry.
func (repository *SQLiteRepository) UpdateStatus(ctx context.Context, update StatusUpdate) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	transaction, err := repository.db.BeginTx(ctx, nil)
	if err != nil {
		return dberr.Wrap(err, "begin_update_order_status")
	}
	defer transaction.Rollback()

	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ? WHERE %s = ? AND %s = ?`,
		schema.Order.Table, schema.Order.Status, schema.Order.UpdatedAt, schema.Order.ID, schema.Order.Status,
	)
	result, err := transaction.ExecContext(ctx, query,
		string(update.To), sqlite.FormatTime(update.ChangedAt), update.OrderID, string(update.From),
	)
	if err != nil {
		return dberr.Wrap(err, "update_order_status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "update_order_status")
	}
	if affected == 0 {
		return ErrConcurrentUpdate
	}

	from := update.From
	_, err = transaction.ExecContext(ctx, liteInsertHistory,
		update.OrderID, nullableStatus(&from), string(update.To), update.ChangedBy, sqlite.FormatTime(update.ChangedAt),
	)
	if err != nil {
		return dberr.Wrap(err, "insert_order_history")
	}

	return dberr.Wrap(transaction.Commit(), "commit_update_order_status")
}

// loadDetails fetches items and history for all orders in two queries.
func (repository *SQLiteRepository) loadDetails(ctx context.Context, orders []*Order) error {
	ids := orderIDs(orders)
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	in := schema.Placeholders(len(ids), false)

	// ── Items ────────────────────────────────────────────────────────────
	itemQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IN (%s)
		ORDER BY %s, %s
	`,
		schema.OrderItem.OrderID, schema.OrderItem.ProductType, schema.OrderItem.ProductName, schema.OrderItem.Size,
		schema.OrderItem.Quantity, schema.OrderItem.UnitPriceCents, schema.OrderItem.LineTotalCents,
		schema.OrderItem.Table,
		schema.OrderItem.OrderID, in,
		schema.OrderItem.OrderID, schema.OrderItem.Position,
	)

	rows, err := repository.db.QueryContext(ctx, itemQuery, args...)
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
		WHERE %s IN (%s)
		ORDER BY %s
	`,
		schema.OrderStatusHistory.OrderID, schema.OrderStatusHistory.FromStatus, schema.OrderStatusHistory.ToStatus,
		schema.OrderStatusHistory.ChangedBy, schema.OrderStatusHistory.ChangedAt,
		schema.OrderStatusHistory.Table,
		schema.OrderStatusHistory.OrderID, in,
		schema.OrderStatusHistory.ID,
	)

	rows, err = repository.db.QueryContext(ctx, historyQuery, args...)
	if err != nil {
		return dberr.Wrap(err, "load_order_history")
	}
	defer rows.Close()

	history := make(map[string][]StatusChange, len(orders))
	for rows.Next() {
		var (
			orderID   string
			from      *string
			to        string
			changedAt string
			change    StatusChange
		)
		if err := rows.Scan(&orderID, &from, &to, &change.ChangedBy, &changedAt); err != nil {
			return dberr.Wrap(err, "scan_order_history")
		}
		if change.ChangedAt, err = sqlite.ParseTime(changedAt); err != nil {
			return dberr.Wrap(err, "scan_order_history")
		}
		change.From = statusPointer(from)
		change.To = Status(to)
		history[orderID] = append(history[orderID], change)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_order_history")
	}

	attach(orders, items, history)
	return nil
}

func scanSQLiteOrder(row interface{ Scan(...any) error }) (*Order, error) {
	order := &Order{}
	var (
		totalCents           int64
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&order.ID, &order.ScrollID, &order.Email,
		&order.Name, &order.Address, &order.City, &order.State, &order.Zip, &order.Country,
		&totalCents, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.TotalAmount = money.FromCents(totalCents)
	order.Status = Status(status)
	if order.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if order.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return order, nil
}
