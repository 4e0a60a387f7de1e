// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TransmissionTable represents the 'transmission' table
type TransmissionTable struct {
	Table       string
	ID          string
	DayNumber   string
	Title       string
	Description string
	VideoURL    string
	CreatedAt   string
	UpdatedAt   string
}

// Transmission is the schema definition for transmission
var Transmission = TransmissionTable{
	Table:       "transmission",
	ID:          "id",
	DayNumber:   "day_number",
	Title:       "title",
	Description: "description",
	VideoURL:    "video_url",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t TransmissionTable) Columns() []string {
	return []string{t.ID, t.DayNumber, t.Title, t.Description, t.VideoURL, t.CreatedAt, t.UpdatedAt}
}
