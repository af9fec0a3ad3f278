// Copyright (c) 2026 FutureKey. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes classified by [Wrap].
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows: NOT_FOUND
//   - 23505 unique_violation: CONFLICT (the store-level twin of the service pre-checks)
//   - 23503 foreign_key_violation: NOT_FOUND for the referenced row
//   - anything else: INTERNAL_ERROR, with the action recorded on the cause
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case uniqueViolation:
			conflict := apperr.Conflict("Resource already exists")
			conflict.Cause = fmt.Errorf("%s: %w", action, err)
			return conflict
		case foreignKeyViolation:
			notFound := apperr.NotFound("Referenced resource")
			notFound.Cause = fmt.Errorf("%s: %w", action, err)
			return notFound
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// NotFoundAs replaces the generic [ErrNotFound] with one naming resource.
// Other errors, including foreign-key misses, pass through unchanged.
func NotFoundAs(err error, resource string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
