// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"fmt"
	"time"
)

// TimeLayout is a fixed-width UTC layout, so TEXT ordering equals time ordering.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in [TimeLayout].
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a value written by [FormatTime].
func ParseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(TimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: malformed timestamp %q: %w", value, err)
	}
	return parsed, nil
}
