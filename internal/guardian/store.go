// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guardian

import "context"

type Repository interface {
	FindByEmail(context context.Context, email string) (*Guardian, error)
	FindByScrollID(context context.Context, scrollID string) (*Guardian, error)
	Count(context context.Context) (int, error)
	// List returns every guardian ordered by ordinal.
	List(context context.Context) ([]*Guardian, error)
	// Create reserves the next ordinal and inserts the guardian in one
	// transaction, filling Ordinal and ScrollID. A taken email fails with
	// dberr.ErrDuplicate and releases the ordinal.
	Create(context context.Context, guardian *Guardian) error
}
