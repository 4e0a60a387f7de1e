// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package order is the merchandise ledger: cart quotes, order submission and
the admin-driven status lifecycle.

Money:

Line totals are unit price × quantity, computed exactly. The order total is
the sum of the line totals rounded once, half-up, to cents. Both are frozen
into the order at submission and never recomputed from the catalog.

Lifecycle:

	pending → processing → shipped → delivered
	   └──────────┴──→ cancelled

Every status change is written with a compare-and-set on the previous status
and leaves an entry in the order history.
*/
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/validate"
	"github.com/taibuivan/syncbridge/pkg/money"
	"github.com/taibuivan/syncbridge/pkg/pointer"
	"github.com/taibuivan/syncbridge/pkg/slice"
	"github.com/taibuivan/syncbridge/pkg/uuid"
)

var (
	// ErrNotFound is returned for an unknown order id.
	ErrNotFound = apperr.NotFound("Order")

	// ErrUnverifiedGuardian rejects a submission whose Scroll ID is not registered.
	ErrUnverifiedGuardian = &apperr.AppError{
		Code:       apperr.CodeNotFound,
		Message:    "Unverified guardian: no guardian holds this Scroll ID",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrConcurrentUpdate is returned when the status changed between read and write.
	ErrConcurrentUpdate = apperr.Conflict("Order status was changed by another request, reload and retry")
)

// defaultActor is recorded when the admin name is unknown.
const defaultActor = "admin"

type Service struct {
	repo      Repository
	guardians GuardianVerifier
	catalog   *catalog.Catalog
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, guardians GuardianVerifier, catalog *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		guardians: guardians,
		catalog:   catalog,
		logger:    logger,
		now:       time.Now,
	}
}

// # Cart

// Total sums line totals and rounds the result once.
func Total(items []Item) money.Amount {
	return slice.Reduce(items, money.Zero, func(total money.Amount, item Item) money.Amount {
		return total.Add(item.LineTotal)
	}).Round()
}

// Quote prices a cart from the catalog without storing anything.
func (service *Service) Quote(lines []LineInput) (*Quote, error) {
	validator := &validate.Validator{}
	items := service.priceLines(validator, lines)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return &Quote{Items: items, Total: Total(items)}, nil
}

// priceLines validates cart lines and snapshots catalog names and prices.
// Problems are collected on validator; the returned items are only meaningful
// when it holds no errors.
func (service *Service) priceLines(validator *validate.Validator, lines []LineInput) []Item {
	validator.Custom(FieldItems, len(lines) == 0, "At least one item is required")

	items := make([]Item, 0, len(lines))
	for index, line := range lines {
		field := func(name string) string { return fmt.Sprintf("%s[%d].%s", FieldItems, index, name) }

		validator.Range(field(FieldQuantity), line.Quantity, 1, maxLineQuantity)

		product, err := service.catalog.Product(line.ProductType)
		if err != nil {
			validator.Custom(field(FieldProductType), true, fmt.Sprintf("Unknown product type %q", line.ProductType))
			continue
		}

		size := strings.TrimSpace(line.Size)
		if !product.AcceptsSize(size) {
			if product.HasSizes() {
				validator.OneOf(field(FieldSize), size, product.Sizes...)
			} else {
				validator.Custom(field(FieldSize), true, "This product has a single size")
			}
		}

		item := Item{
			ProductType: product.Type,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   product.Price.Times(line.Quantity),
		}
		if size != "" {
			item.Size = pointer.To(size)
		}
		items = append(items, item)
	}
	return items
}

// # Submission

/*
Submit verifies the guardian, prices the cart and stores a pending order.

Nothing is written unless every check passes; the order, its lines and its
first history entry are stored in one transaction.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Order: The stored order
  - error: ValidationError, ErrUnverifiedGuardian, or a storage failure
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Order, error) {
	input = normalizeSubmission(input)

	// ── 1. Guardian Verification ─────────────────────────────────────────
	if input.ScrollID == "" {
		return nil, validate.RequiredError(FieldScrollID, "This field is required")
	}

	scrollID, err := service.guardians.VerifyScrollID(context, input.ScrollID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrUnverifiedGuardian
		}
		return nil, err
	}

	// ── 2. Lines, Contact and Shipping ───────────────────────────────────
	validator := &validate.Validator{}
	items := service.priceLines(validator, input.Items)

	validator.Required(FieldEmail, input.Email).MaxLen(FieldEmail, input.Email, maxEmailLength)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	for _, field := range []struct{ name, value string }{
		{FieldShippingName, input.Name},
		{FieldShippingAddress, input.Address},
		{FieldShippingCity, input.City},
		{FieldShippingState, input.State},
		{FieldShippingZip, input.Zip},
		{FieldShippingCountry, input.Country},
	} {
		validator.Required(field.name, field.value).MaxLen(field.name, field.value, maxShippingFieldLen)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 3. Snapshot and Persist ──────────────────────────────────────────
	now := service.now().UTC().Truncate(time.Microsecond)
	order := &Order{
		ID:          uuid.New(),
		ScrollID:    scrollID,
		Email:       input.Email,
		Items:       items,
		Shipping:    input.Shipping,
		TotalAmount: Total(items),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		History: []StatusChange{{
			To:        StatusPending,
			ChangedBy: scrollID,
			ChangedAt: now,
		}},
	}

	if err := service.repo.Create(context, order); err != nil {
		return nil, err
	}

	service.logger.Info("order_submitted",
		slog.String("order_id", order.ID),
		slog.String("scroll_id", order.ScrollID),
		slog.String("total_amount", order.TotalAmount.String()),
		slog.Int("items", len(order.Items)),
	)
	return order, nil
}

// # Administration

// List returns every order, newest first.
func (service *Service) List(context context.Context) ([]*Order, error) {
	orders, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (service *Service) Get(context context.Context, id string) (*Order, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}
	order, err := service.repo.Get(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, ErrNotFound
	}
	return order, err
}

/*
UpdateStatus moves an order to a new status on behalf of actor.

Returns:
  - *Order: The order after the change, history included
  - error: ValidationError for an unknown status, NotFound, or Conflict for a
    forbidden or concurrent transition
*/
func (service *Service) UpdateStatus(context context.Context, id, status, actor string) (*Order, error) {
	next, ok := ParseStatus(status)
	if !ok {
		names := slice.Map(Statuses, func(s Status) string { return string(s) })
		return nil, validate.RequiredError(FieldStatus, "Must be one of: "+strings.Join(names, ", "))
	}

	current, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(current.Status, next); err != nil {
		return nil, err
	}

	if actor == "" {
		actor = defaultActor
	}

	update := StatusUpdate{
		OrderID:   current.ID,
		From:      current.Status,
		To:        next,
		ChangedBy: actor,
		ChangedAt: service.now().UTC().Truncate(time.Microsecond),
	}
	if err := service.repo.UpdateStatus(context, update); err != nil {
		return nil, err
	}

	service.logger.Info("order_status_updated",
		slog.String("order_id", current.ID),
		slog.String("from", string(update.From)),
		slog.String("to", string(update.To)),
		slog.String("admin", actor),
	)

	return service.Get(context, id)
}

// # Helpers

func normalizeSubmission(input SubmitInput) SubmitInput {
	input.ScrollID = strings.TrimSpace(input.ScrollID)
	input.Email = validate.NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.Zip = strings.TrimSpace(input.Zip)
	input.Country = strings.TrimSpace(input.Country)
	return input
}
