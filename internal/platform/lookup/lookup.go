// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package lookup resolves foreign keys for a page of rows without N+1 queries.

The relational schema keeps references as plain id columns. Instead of joining,
services collect the distinct referenced ids of a result set, resolve them with
one "WHERE id = ANY($1)" query per referenced table, and attach the result to
each row in memory.

# Contract

  - An empty key set issues no query.
  - Duplicate keys collapse to a single lookup.
  - A nil key, or a key the store cannot resolve, attaches nil. It never fails.
*/
package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/database/schema"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/metrics"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/postgres"
)

// Unknown is the label used when a reference cannot be resolved.
const Unknown = "Unknown"

// Ref is the minimal projection of a referenced entity.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Loader resolves a distinct set of keys in one round-trip.
type Loader[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

// Keys returns the distinct non-nil keys of rows in first-seen order.
func Keys[T any, K comparable](rows []T, key func(T) *K) []K {
	seen := make(map[K]struct{}, len(rows))
	keys := make([]K, 0, len(rows))

	for _, row := range rows {
		k := key(row)
		if k == nil {
			continue
		}
		if _, ok := seen[*k]; ok {
			continue
		}
		seen[*k] = struct{}{}
		keys = append(keys, *k)
	}

	return keys
}

/*
Attach resolves the foreign key of every row and hands the result to set.

Parameters:
  - ctx: context.Context
  - rows: []T (usually pointers, so set can mutate them)
  - key: func(T) *K (nil means the row has no reference)
  - load: Loader[K, V] (called at most once)
  - set: func(T, *V) (receives nil for absent or unresolved references)

Returns:
  - error: Only loader failures
*/
func Attach[T any, K comparable, V any](ctx context.Context, rows []T, key func(T) *K, load Loader[K, V], set func(T, *V)) error {
	keys := Keys(rows, key)

	resolved := map[K]V{}
	if len(keys) > 0 {
		loaded, err := load(ctx, keys)
		if err != nil {
			return err
		}
		if loaded != nil {
			resolved = loaded
		}
	}

	for _, row := range rows {
		k := key(row)
		if k == nil {
			set(row, nil)
			continue
		}

		value, ok := resolved[*k]
		if !ok {
			set(row, nil)
			continue
		}
		set(row, &value)
	}

	return nil
}

// Refs returns a store-backed [Loader] projecting (id, label) from source.
//
// The table and columns come from [schema] descriptors, never from user input.
func Refs(db postgres.Querier, source schema.Source) Loader[string, Ref] {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ANY($1)", source.ID, source.Label, source.Table, source.ID)
	operation := "lookup_" + source.Table

	return func(ctx context.Context, ids []string) (refs map[string]Ref, err error) {
		defer metrics.ObserveQuery(operation, time.Now(), &err)

		rows, err := db.Query(ctx, query, ids)
		if err != nil {
			return nil, dberr.Wrap(err, operation)
		}
		defer rows.Close()

		refs = make(map[string]Ref, len(ids))
		for rows.Next() {
			var ref Ref
			if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
				return nil, dberr.Wrap(err, operation)
			}
			refs[ref.ID] = ref
		}

		return refs, dberr.Wrap(rows.Err(), operation)
	}
}

// Label returns the referenced name, or [Unknown] for a nil reference.
func Label(ref *Ref) string {
	if ref == nil {
		return Unknown
	}
	return ref.Name
}
