// Copyright (c) 2026 FutureKey. All rights reserved.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

/*
SyncJunction replaces every (owner, value) row of a many-to-many table.

Description: Clears the owner's existing links, then queues one INSERT per
value in a single [pgx.Batch]. Must run inside the caller's transaction so
the owner never appears with a partial link set.

Parameters:
  - ctx: context.Context
  - transaction: pgx.Tx
  - table, ownerColumn, valueColumn: string (From schema descriptors)
  - ownerID: string
  - values: []string (Already de-duplicated)

Returns:
  - error: Raw pgx errors for the caller to classify
*/
func SyncJunction(ctx context.Context, transaction pgx.Tx, table, ownerColumn, valueColumn, ownerID string, values []string) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, ownerColumn)
	if _, err := transaction.Exec(ctx, deleteQuery, ownerID); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", table, err)
	}

	if len(values) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", table, ownerColumn, valueColumn)
	batch := &pgx.Batch{}
	for _, value := range values {
		batch.Queue(insertQuery, ownerID, value)
	}

	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", table, err)
	}
	return nil
}
