// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values,
which keep B-tree primary keys append-only in PostgreSQL and sort by creation
time as TEXT in SQLite.

This is the ID type for guardians, transmissions and orders.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether value is a canonical UUID string. Handlers use it to
// answer 404 for malformed path ids before reaching storage.
func Valid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
