// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns shared by the PostgreSQL and
// SQLite repositories, so both dialects build queries from one definition.
package schema

// GuardianTable represents the 'guardian' table
type GuardianTable struct {
	Table        string
	ID           string
	Ordinal      string
	ScrollID     string
	Email        string
	IsCertified  string
	RegisteredAt string
}

// Guardian is the schema definition for guardian
var Guardian = GuardianTable{
	Table:        "guardian",
	ID:           "id",
	Ordinal:      "ordinal",
	ScrollID:     "scroll_id",
	Email:        "email",
	IsCertified:  "is_certified",
	RegisteredAt: "registered_at",
}

func (t GuardianTable) Columns() []string {
	return []string{t.ID, t.Ordinal, t.ScrollID, t.Email, t.IsCertified, t.RegisteredAt}
}

// GuardianSequenceTable represents the single-row 'guardian_sequence' table
type GuardianSequenceTable struct {
	Table       string
	ID          string
	LastOrdinal string
}

var GuardianSequence = GuardianSequenceTable{
	Table:       "guardian_sequence",
	ID:          "id",
	LastOrdinal: "last_ordinal",
}
