// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mission

import "time"

// Clock binds the configured timeline to a time source.
type Clock struct {
	start     time.Time
	totalDays int
	now       func() time.Time
}

// NewClock creates a clock reading the wall time.
func NewClock(start time.Time, totalDays int) *Clock {
	return &Clock{start: start, totalDays: totalDays, now: time.Now}
}

// WithNow replaces the time source. Tests use it to pin the date.
func (clock *Clock) WithNow(now func() time.Time) *Clock {
	clock.now = now
	return clock
}

// Status returns the timeline for the current instant.
func (clock *Clock) Status() Status {
	return Compute(clock.now(), clock.start, clock.totalDays)
}

// TotalDays is the configured mission length. Transmission day numbers are
// validated against it.
func (clock *Clock) TotalDays() int {
	return clock.totalDays
}
