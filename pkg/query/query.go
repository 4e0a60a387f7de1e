// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued settings written as comma separated text,
// as used by CORS_ORIGINS.
package query

import "strings"

// StringSlice splits a comma separated value into trimmed, non-empty entries.
// It returns nil for a blank value.
func StringSlice(value string) []string {
	var entries []string
	for _, entry := range strings.Split(value, ",") {
		if clean := strings.TrimSpace(entry); clean != "" {
			entries = append(entries, clean)
		}
	}
	return entries
}
