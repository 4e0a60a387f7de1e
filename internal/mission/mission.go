// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mission computes the mission timeline shown on every progress page.

The status is derived, never stored: it is a pure function of the current
time, the configured start date and the mission length.

Clamping policy:

  - Before the start date the mission reports day 1 and is not active.
  - After the last day it reports day total_days and is not active.
  - progress_percent is an integer in [0, 100].
*/
package mission

import (
	"math"
	"time"
)

// DateLayout is the wire format of mission_start and mission_end.
const DateLayout = "2006-01-02"

// Status is the mission timeline at a point in time.
type Status struct {
	CurrentDay      int    `json:"current_day"`
	TotalDays       int    `json:"total_days"`
	DaysRemaining   int    `json:"days_remaining"`
	ProgressPercent int    `json:"progress_percent"`
	MissionStart    string `json:"mission_start"`
	MissionEnd      string `json:"mission_end"`
	IsActive        bool   `json:"is_active"`
}

/*
Compute derives the [Status] at now for a mission of totalDays starting on start.

Day arithmetic is done on calendar dates in the location of start, so the day
rolls over at local midnight and DST shifts never skip or repeat a day.

Parameters:
  - now: time.Time (any location, converted to start's location)
  - start: time.Time (only the date part is used)
  - totalDays: int (must be >= 1; non-positive values are treated as 1)

Returns:
  - Status: The derived timeline
*/
func Compute(now, start time.Time, totalDays int) Status {
	if totalDays < 1 {
		totalDays = 1
	}

	startDate := dateOf(start, start.Location())
	today := dateOf(now, start.Location())
	endDate := startDate.AddDate(0, 0, totalDays-1)

	status := Status{
		TotalDays:    totalDays,
		MissionStart: startDate.Format(DateLayout),
		MissionEnd:   endDate.Format(DateLayout),
	}

	// ── 1. Before Launch ─────────────────────────────────────────────────
	if today.Before(startDate) {
		status.CurrentDay = 1
		status.DaysRemaining = totalDays
		status.ProgressPercent = percent(1, totalDays)
		return status
	}

	// ── 2. Elapsed Days (clamped) ────────────────────────────────────────
	day := daysBetween(startDate, today) + 1
	if day > totalDays {
		day = totalDays
	}

	status.CurrentDay = day
	status.DaysRemaining = totalDays - day
	status.ProgressPercent = percent(day, totalDays)
	status.IsActive = !today.After(endDate)

	return status
}

// dateOf truncates t to midnight of its calendar date in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	// Compare as UTC dates so a 23h or 25h DST day still counts as one.
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// percent rounds 100*day/total half-up and clamps it to [0, 100].
func percent(day, total int) int {
	value := int(math.Round(100 * float64(day) / float64(total)))
	return max(0, min(100, value))
}
