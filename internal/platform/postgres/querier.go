// Copyright (c) 2026 FutureKey. All rights reserved.

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by [*pgxpool.Pool] and [pgx.Tx].
//
// Repositories and lookups accept a Querier so the same code runs inside
// or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// WithTx runs fn inside a transaction, committing on success and rolling back
// on error or panic.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	transaction, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	// Rollback after a successful commit is a no-op.
	defer transaction.Rollback(ctx)

	if err := fn(transaction); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return nil
}

// # Partial Updates

// Assignments accumulates "column = $n" pairs for a partial UPDATE.
//
// Only columns explicitly Set are written, which is how services implement
// "absent field means untouched".
type Assignments struct {
	columns []string
	args    []any
}

// Set records a column assignment.
func (a *Assignments) Set(column string, value any) *Assignments {
	a.columns = append(a.columns, column)
	a.args = append(a.args, value)
	return a
}

// Empty reports whether no column was assigned.
func (a *Assignments) Empty() bool {
	return len(a.columns) == 0
}

// Args returns the bound values in assignment order.
func (a *Assignments) Args() []any {
	return a.args
}

// SQL renders the SET clause with placeholders starting at $start.
func (a *Assignments) SQL(start int) string {
	parts := make([]string, len(a.columns))
	for i, column := range a.columns {
		parts[i] = fmt.Sprintf("%s = $%d", column, start+i)
	}
	return strings.Join(parts, ", ")
}

// # Filters

// Where accumulates AND-ed predicates and their arguments for list queries.
//
// The same Where feeds both the COUNT query and the page query so that
// meta.total and data reflect one filter.
type Where struct {
	clauses []string
	args    []any
}

// Add appends a predicate. Each "?" in clause is replaced by the next placeholder.
func (w *Where) Add(clause string, values ...any) *Where {
	for _, value := range values {
		w.args = append(w.args, value)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
	return w
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search appends an OR-ed ILIKE over the given columns for a free-text term.
// Blank terms are ignored. The term matches literally.
func (w *Where) Search(term string, columns ...string) *Where {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return w
	}

	w.args = append(w.args, "%"+likeEscaper.Replace(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(w.args))

	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " ILIKE " + placeholder + ` ESCAPE '\'`
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
	return w
}

// SQL renders " WHERE a AND b" or an empty string.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the bound values.
func (w *Where) Args() []any {
	return w.args
}

// Next returns the next free placeholder index (for LIMIT/OFFSET).
func (w *Where) Next() int {
	return len(w.args) + 1
}
