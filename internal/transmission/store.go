// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transmission

import "context"

type Repository interface {
	// List returns every transmission ordered by day number ascending.
	List(context context.Context) ([]*Transmission, error)
	// Latest returns the transmission with the highest day number.
	Latest(context context.Context) (*Transmission, error)
	Get(context context.Context, id string) (*Transmission, error)
	// DayTaken reports whether another transmission (not excludeID) uses day.
	DayTaken(context context.Context, day int, excludeID string) (bool, error)
	// Create inserts; a used day fails with dberr.ErrDuplicate.
	Create(context context.Context, transmission *Transmission) error
	// Update rewrites the editable fields and fills CreatedAt.
	Update(context context.Context, transmission *Transmission) error
	Delete(context context.Context, id string) error
}
