// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminHashCost is the bcrypt cost used for the operator password.
const AdminHashCost = 12

// ErrPasswordTooLong is returned for input bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

/*
HashAdminPassword produces the bcrypt digest stored in ADMIN_PASSWORD_HASH.

Returns:
  - string: Modular crypt string ($2a$12$...)
  - error: ErrPasswordTooLong or a bcrypt failure
*/
func HashAdminPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), AdminHashCost)
	if err != nil {
		return "", fmt.Errorf("sec_hash_failed: %w", err)
	}
	return string(digest), nil
}

// MatchesHash reports whether password produces digest.
func MatchesHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// ValidHash reports whether digest parses as a bcrypt hash.
func ValidHash(digest string) bool {
	_, err := bcrypt.Cost([]byte(digest))
	return err == nil
}
