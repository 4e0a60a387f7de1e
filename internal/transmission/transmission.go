// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transmission

import "time"

// Transmission is a dated entry of the mission's daily content calendar.
type Transmission struct {
	ID          string    `json:"id"`
	DayNumber   int       `json:"day_number"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    *string   `json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input carries the admin-editable fields for create and update.
type Input struct {
	DayNumber   int     `json:"day_number"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url"`
}

// Global field names for validation
const (
	FieldDayNumber   = "day_number"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoURL    = "video_url"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)
