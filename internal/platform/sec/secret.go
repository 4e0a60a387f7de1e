// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec isolates security-sensitive primitives (hashing, constant-time
// secret comparison) from the domain logic.
package sec

import (
	"crypto/sha256"
	"crypto/subtle"
)

// EqualSecret compares two secrets in constant time.
//
// Both sides are hashed first so the comparison time does not depend on the
// length of either input.
func EqualSecret(provided, expected string) bool {
	providedDigest := sha256.Sum256([]byte(provided))
	expectedDigest := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(providedDigest[:], expectedDigest[:]) == 1
}
