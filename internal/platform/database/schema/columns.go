// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"fmt"
	"strings"
)

// List joins column names for a SELECT or INSERT column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Placeholders returns "$1, $2, ..." (PostgreSQL) or "?, ?, ..." (SQLite)
// for n bind parameters.
func Placeholders(n int, dollar bool) string {
	marks := make([]string, n)
	for i := range marks {
		if dollar {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}
