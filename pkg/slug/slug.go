// Copyright (c) 2026 FutureKey. All rights reserved.

// Package slug normalizes human-entered names and derives ASCII codes from them.
//
// # Usage
//
// Names are stored in NFC with collapsed whitespace so that uniqueness checks
// compare like with like ("Hà  Nội" and "Hà Nội" are the same province).
// Career codes default to an upper-case ASCII rendering of the name
// ("Kỹ sư phần mềm" becomes "KY_SU_PHAN_MEM").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// whitespace matches any run of Unicode white space.
	whitespace = regexp.MustCompile(`\s+`)
	// nonAlphanumeric matches any sequence of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize trims, collapses inner whitespace, and composes to NFC.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// From converts an arbitrary Unicode string into a hyphenated ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents) and folds letters with no decomposition (đ → d).
// 3. Converts to lowercase.
// 4. Replaces runs of non-alphanumeric characters with a single hyphen.
func From(s string) string {
	return join(s, "-")
}

// Code converts a name into an upper-case identifier joined by underscores.
func Code(s string) string {
	return strings.ToUpper(join(s, "_"))
}

func join(s, separator string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.Map(fold, strings.ToLower(result))
	result = nonAlphanumeric.ReplaceAllString(result, separator)

	return strings.Trim(result, separator)
}

// fold maps letters that NFD leaves intact to their ASCII base.
func fold(r rune) rune {
	switch r {
	case 'đ':
		return 'd'
	case 'ø':
		return 'o'
	case 'ł':
		return 'l'
	}
	return r
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
