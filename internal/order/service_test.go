// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/guardian"
	"github.com/taibuivan/syncbridge/internal/order"
	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite/sqlitetest"
	"github.com/taibuivan/syncbridge/internal/platform/validate"
	"github.com/taibuivan/syncbridge/pkg/money"
	"github.com/taibuivan/syncbridge/pkg/pointer"
)

type fixture struct {
	db        *sql.DB
	guardians *guardian.Service
	orders    *order.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := sqlitetest.Open(t)
	logger := sqlitetest.Logger()

	guardians := guardian.NewService(guardian.NewSQLiteRepository(db), logger, 325)
	orders := order.NewService(order.NewSQLiteRepository(db), guardians, catalog.Default(), logger)

	return fixture{db: db, guardians: guardians, orders: orders}
}

func (f fixture) register(t *testing.T, email string) string {
	t.Helper()
	registered, _, err := f.guardians.Register(context.Background(), email)
	require.NoError(t, err)
	return registered.ScrollID
}

func (f fixture) count(t *testing.T, table string) int {
	t.Helper()
	var total int
	require.NoError(t, f.db.QueryRow("SELECT count(*) FROM "+table).Scan(&total))
	return total
}

func shipping() order.Shipping {
	return order.Shipping{
		Name:    "Ada Guardian",
		Address: "1 Bridge Way",
		City:    "Portland",
		State:   "OR",
		Zip:     "97201",
		Country: "US",
	}
}

func hoodieAndCap(scrollID string) order.SubmitInput {
	return order.SubmitInput{
		ScrollID: scrollID,
		Email:    "Ada@Example.com",
		Items: []order.LineInput{
			{ProductType: "hoodie", Size: "L", Quantity: 2},
			{ProductType: "cap", Quantity: 1},
		},
		Shipping: shipping(),
	}
}

/*
TestSubmit covers the reference cart: two hoodies at 65.00 and one cap at
30.00 total 160.00, and the order starts pending with one history entry.
*/
func TestSubmit(t *testing.T) {
	f := newFixture(t)
	scrollID := f.register(t, "ada@example.com")

	submitted, err := f.orders.Submit(context.Background(), hoodieAndCap("sb-0001"))
	require.NoError(t, err)

	assert.Equal(t, scrollID, submitted.ScrollID)
	assert.Equal(t, "ada@example.com", submitted.Email)
	assert.Equal(t, order.StatusPending, submitted.Status)
	assert.Equal(t, "160.00", submitted.TotalAmount.String())
	require.Len(t, submitted.Items, 2)
	assert.Equal(t, "Guardian Hoodie", submitted.Items[0].ProductName)
	assert.Equal(t, "130.00", submitted.Items[0].LineTotal.String())
	assert.Equal(t, "L", pointer.Val(submitted.Items[0].Size))
	assert.Nil(t, submitted.Items[1].Size)

	stored, err := f.orders.Get(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(money.MustParse("160")))
	require.Len(t, stored.Items, len(submitted.Items))
	for index, item := range stored.Items {
		want := submitted.Items[index]
		assert.Equal(t, want.ProductType, item.ProductType)
		assert.Equal(t, want.Size, item.Size)
		assert.Equal(t, want.Quantity, item.Quantity)
		assert.True(t, want.UnitPrice.Equal(item.UnitPrice))
		assert.True(t, want.LineTotal.Equal(item.LineTotal))
	}
	assert.Equal(t, submitted.Shipping, stored.Shipping)
	require.Len(t, stored.History, 1)
	assert.Nil(t, stored.History[0].From)
	assert.Equal(t, order.StatusPending, stored.History[0].To)
	assert.Equal(t, scrollID, stored.History[0].ChangedBy)
}

/*
TestSubmit_EmailMatchesGuardianRecord normalizes the order email exactly the
way registration normalized the guardian's.
*/
func TestSubmit_EmailMatchesGuardianRecord(t *testing.T) {
	f := newFixture(t)
	scrollID := f.register(t, "  ADA@Example.COM ")

	registered, err := f.guardians.LookupByScrollID(context.Background(), scrollID)
	require.NoError(t, err)

	input := hoodieAndCap(scrollID)
	input.Email = "Ada@EXAMPLE.com "
	submitted, err := f.orders.Submit(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, registered.Email, submitted.Email)
	assert.Equal(t, validate.NormalizeEmail(input.Email), submitted.Email)
}

func TestSubmit_UnverifiedGuardian(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Submit(context.Background(), hoodieAndCap("SB-0042"))
	assert.ErrorIs(t, err, order.ErrUnverifiedGuardian)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.Zero(t, f.count(t, "merch_order"))
	assert.Zero(t, f.count(t, "merch_order_item"))
	assert.Zero(t, f.count(t, "merch_order_status_history"))
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com")

	tests := []struct {
		name   string
		mutate func(*order.SubmitInput)
		fields []string
	}{
		{
			name:   "missing_scroll_id",
			mutate: func(input *order.SubmitInput) { input.ScrollID = " " },
			fields: []string{"scroll_id"},
		},
		{
			name:   "no_items",
			mutate: func(input *order.SubmitInput) { input.Items = nil },
			fields: []string{"items"},
		},
		{
			name: "unknown_product",
			mutate: func(input *order.SubmitInput) {
				input.Items = []order.LineInput{{ProductType: "mug", Quantity: 1}}
			},
			fields: []string{"items[0].product_type"},
		},
		{
			name: "bad_size_and_quantity",
			mutate: func(input *order.SubmitInput) {
				input.Items = []order.LineInput{{ProductType: "hoodie", Size: "XS", Quantity: 0}}
			},
			fields: []string{"items[0].quantity", "items[0].size"},
		},
		{
			name: "missing_size",
			mutate: func(input *order.SubmitInput) {
				input.Items = []order.LineInput{{ProductType: "tshirt", Quantity: 1}}
			},
			fields: []string{"items[0].size"},
		},
		{
			name: "size_on_single_size_item",
			mutate: func(input *order.SubmitInput) {
				input.Items = []order.LineInput{{ProductType: "poster", Size: "M", Quantity: 1}}
			},
			fields: []string{"items[0].size"},
		},
		{
			name:   "bad_email",
			mutate: func(input *order.SubmitInput) { input.Email = "not-an-email" },
			fields: []string{"email"},
		},
		{
			name: "missing_shipping",
			mutate: func(input *order.SubmitInput) {
				input.Shipping = order.Shipping{Name: "Ada", Address: "1 Way", Country: "US"}
			},
			fields: []string{"shipping_city", "shipping_state", "shipping_zip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := hoodieAndCap("SB-0001")
			tt.mutate(&input)

			_, err := f.orders.Submit(context.Background(), input)

			appError := apperr.As(err)
			require.NotNil(t, appError, "got %v", err)
			assert.Equal(t, apperr.CodeValidation, appError.Code)

			var fields []string
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}

	assert.Zero(t, f.count(t, "merch_order"))
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	quote, err := f.orders.Quote([]order.LineInput{
		{ProductType: "hoodie", Size: "M", Quantity: 2},
		{ProductType: "CAP", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "160.00", quote.Total.String())
	assert.Equal(t, "cap", quote.Items[1].ProductType)

	_, err = f.orders.Quote(nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestTotal_RoundsOnce(t *testing.T) {
	third := money.MustParse("0.333")
	items := []order.Item{{LineTotal: third}, {LineTotal: third}, {LineTotal: third}}

	assert.Equal(t, "1.00", order.Total(items).String())
	assert.Equal(t, "0.00", order.Total(nil).String())
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com")
	ctx := context.Background()

	submitted, err := f.orders.Submit(ctx, hoodieAndCap("SB-0001"))
	require.NoError(t, err)

	shipped, err := f.orders.UpdateStatus(ctx, submitted.ID, "shipped", "root")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, shipped.Status)
	assert.Equal(t, "160.00", shipped.TotalAmount.String())

	require.Len(t, shipped.History, 2)
	assert.Equal(t, order.StatusPending, *shipped.History[1].From)
	assert.Equal(t, order.StatusShipped, shipped.History[1].To)
	assert.Equal(t, "root", shipped.History[1].ChangedBy)

	_, err = f.orders.UpdateStatus(ctx, submitted.ID, "cancelled", "root")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	delivered, err := f.orders.UpdateStatus(ctx, submitted.ID, "delivered", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", delivered.History[2].ChangedBy)

	for _, next := range []string{"pending", "processing", "shipped", "cancelled", "delivered"} {
		_, err = f.orders.UpdateStatus(ctx, submitted.ID, next, "root")
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict), "delivered -> %s", next)
	}

	_, err = f.orders.UpdateStatus(ctx, submitted.ID, "lost", "root")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.orders.UpdateStatus(ctx, "00000000-0000-7000-8000-000000000000", "shipped", "root")
	assert.ErrorIs(t, err, order.ErrNotFound)

	assert.Equal(t, 3, f.count(t, "merch_order_status_history"))
}

func TestUpdateStatus_CancelledIsTerminal(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com")
	ctx := context.Background()

	submitted, err := f.orders.Submit(ctx, hoodieAndCap("SB-0001"))
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, submitted.ID, "processing", "root")
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, submitted.ID, "cancelled", "root")
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, submitted.ID, "shipped", "root")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestRepository_StaleStatus(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com")
	ctx := context.Background()

	submitted, err := f.orders.Submit(ctx, hoodieAndCap("SB-0001"))
	require.NoError(t, err)

	repo := order.NewSQLiteRepository(f.db)
	err = repo.UpdateStatus(ctx, order.StatusUpdate{
		OrderID:   submitted.ID,
		From:      order.StatusProcessing,
		To:        order.StatusShipped,
		ChangedBy: "root",
		ChangedAt: submitted.CreatedAt,
	})
	assert.ErrorIs(t, err, order.ErrConcurrentUpdate)
	assert.Equal(t, 1, f.count(t, "merch_order_status_history"))
}

func TestList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com")
	ctx := context.Background()

	empty, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var ids []string
	for range 3 {
		submitted, err := f.orders.Submit(ctx, hoodieAndCap("SB-0001"))
		require.NoError(t, err)
		ids = append(ids, submitted.ID)
	}

	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
	for _, listed := range orders {
		assert.Len(t, listed.Items, 2)
		assert.Len(t, listed.History, 1)
	}
}
