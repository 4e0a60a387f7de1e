// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"

	"github.com/taibuivan/syncbridge/pkg/slice"
)

type Repository interface {
	// Create stores the order, its items and the first history entry in one
	// transaction.
	Create(context context.Context, order *Order) error
	// Get returns the order with items and history.
	Get(context context.Context, id string) (*Order, error)
	// List returns every order, newest first, with items and history.
	List(context context.Context) ([]*Order, error)
	// UpdateStatus applies a compare-and-set on the current status and appends
	// a history entry. A stale From fails with ErrConcurrentUpdate.
	UpdateStatus(context context.Context, update StatusUpdate) error
}

// GuardianVerifier resolves a Scroll ID to a registered guardian.
//
// Defining it here keeps the ledger independent of the guardian package.
type GuardianVerifier interface {
	VerifyScrollID(context context.Context, scrollID string) (string, error)
}

// attach sets bulk-loaded items and history on their orders.
func attach(orders []*Order, items map[string][]Item, history map[string][]StatusChange) {
	for _, order := range orders {
		order.Items = items[order.ID]
		if order.Items == nil {
			order.Items = []Item{}
		}
		order.History = history[order.ID]
		if order.History == nil {
			order.History = []StatusChange{}
		}
	}
}

// statusPointer converts a nullable column to a *Status.
func statusPointer(value *string) *Status {
	if value == nil {
		return nil
	}
	status := Status(*value)
	return &status
}

// nullableStatus is the inverse of statusPointer.
func nullableStatus(status *Status) *string {
	if status == nil {
		return nil
	}
	value := string(*status)
	return &value
}

func orderIDs(orders []*Order) []string {
	return slice.Map(orders, func(order *Order) string { return order.ID })
}
