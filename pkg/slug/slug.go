// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns free text into the lowercase ASCII keys used for catalog
// product types (e.g. "Guardian Hoodie" → "guardian-hoodie").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators matches every run of characters that cannot appear in a key.
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}), norm.NFC)

// From folds s to a key: accents removed, lowercased, and every other run of
// characters collapsed into a single hyphen. The result never starts or ends
// with a hyphen and may be empty.
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(separators.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

// Valid reports whether s is already a key, i.e. From(s) == s and s is not empty.
func Valid(s string) bool {
	return s != "" && From(s) == s
}
