// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin holds the shared-secret gate in front of content writes and
// the order ledger.
//
// # Architecture
//
// There is a single administrator and no sessions. Every protected request
// carries the credential and is checked again from scratch. A failed-attempt
// throttle keyed by client IP locks out brute force attempts.
package admin

import (
	"strings"

	"github.com/taibuivan/syncbridge/internal/platform/sec"
)

// Gate checks a username and password against the configured secret.
//
// Exactly one of password or passwordHash is set. The username is required
// but otherwise ignored.
type Gate struct {
	password     string
	passwordHash string
}

// NewGate builds a gate from a plain secret or a bcrypt hash.
func NewGate(password, passwordHash string) *Gate {
	return &Gate{password: password, passwordHash: passwordHash}
}

// Authenticate reports whether the credential matches in constant time.
func (gate *Gate) Authenticate(username, password string) bool {
	if strings.TrimSpace(username) == "" || password == "" {
		return false
	}

	if gate.passwordHash != "" {
		return sec.MatchesHash(password, gate.passwordHash)
	}

	if gate.password == "" {
		return false
	}
	return sec.EqualSecret(password, gate.password)
}
