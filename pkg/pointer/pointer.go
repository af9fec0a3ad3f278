// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Nullable columns surface as pointers in entity structs. These helpers keep
call sites free of temporary variables.

Key Functions:
  - To: Creates a pointer from a value literal.
  - NilIfEmpty: Maps the zero value to nil.
  - Trimmed: Normalizes optional text input.
*/
package pointer

import "strings"

// To returns a pointer to the provided value (e.g. pointer.To("Hanoi")).
func To[T any](v T) *T {
	return &v
}

// NilIfEmpty returns nil for the zero value, otherwise a pointer to v.
// Used for optional text columns where "" means "not provided".
func NilIfEmpty[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// Trimmed returns nil for nil or blank text, otherwise the trimmed text.
func Trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return NilIfEmpty(strings.TrimSpace(*value))
}
