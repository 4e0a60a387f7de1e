// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guardian

import (
	"fmt"
	"strings"
	"time"
)

// Guardian is a registrant holding a Scroll ID. Guardians are never mutated
// or deleted after registration.
type Guardian struct {
	ID           string    `json:"id"`
	Ordinal      int       `json:"-"`
	ScrollID     string    `json:"scroll_id"`
	Email        string    `json:"email"`
	IsCertified  bool      `json:"is_certified"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Certificate is the view model behind the certificate page.
type Certificate struct {
	ScrollID         string    `json:"scroll_id"`
	RegisteredAt     time.Time `json:"registered_at"`
	IsCertified      bool      `json:"is_certified"`
	CertificateTitle string    `json:"certificate_title"`
	Organization     string    `json:"organization"`
	Mission          string    `json:"mission"`
}

// Certificate copy.
const (
	CertificateTitle = "Certificate of Guardianship"
	Organization     = "TheSyncBridge"
)

// ScrollIDPrefix starts every Scroll ID.
const ScrollIDPrefix = "SB-"

// Global field names for validation
const (
	FieldEmail    = "email"
	FieldScrollID = "scroll_id"
)

const maxEmailLength = 254

// FormatScrollID renders an ordinal as "SB-0001". Ordinals above 9999 widen.
func FormatScrollID(ordinal int) string {
	return fmt.Sprintf("%s%04d", ScrollIDPrefix, ordinal)
}

// NormalizeScrollID trims and upper-cases a Scroll ID for lookups.
func NormalizeScrollID(scrollID string) string {
	return strings.ToUpper(strings.TrimSpace(scrollID))
}
