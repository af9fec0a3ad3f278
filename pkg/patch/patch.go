// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package patch models partial-update fields decoded from JSON.

A PUT body may omit a field (leave it untouched), send null (clear it), or
send a value (overwrite it). A plain pointer cannot tell the first two apart,
so request DTOs declare such fields as [Field].

	type UpdateCommuneRequest struct {
		Name       patch.Field[string] `json:"name"`
		ProvinceID patch.Field[string] `json:"province_id"`
	}
*/
package patch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a tri-state optional value: absent, null, or set.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field holding value.
func Of[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}

	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue reports whether a non-null value was supplied.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns nil for null, otherwise a pointer to the value.
// Callers must check Set first.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	value := f.Value
	return &value
}

// TrimBlank trims a supplied text value and turns blank text into an explicit
// null. Absent and null fields are returned unchanged.
func TrimBlank(field Field[string]) Field[string] {
	if !field.HasValue() {
		return field
	}
	field.Value = strings.TrimSpace(field.Value)
	if field.Value == "" {
		return Null[string]()
	}
	return field
}
