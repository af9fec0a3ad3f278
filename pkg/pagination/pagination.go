// Copyright (c) 2026 FutureKey. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Clients page with a 1-based "page" and a "limit"; stores page with a 0-based
// "skip" (SQL OFFSET). This package converts between the two and builds the
// metadata block delivered in the response envelope.
package pagination

import (
	"math"
	"net/http"
	"strings"

	"github.com/huyhoang189/futurekey-be-sub002/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Direction is a SQL sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Skip returns the SQL OFFSET value derived from [Page] and [Limit].
// It saturates at [math.MaxInt] and is never negative.
func (p Params) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Sort is a whitelisted ordering request.
type Sort struct {
	Field     string
	Direction Direction
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Page  int `json:"page"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total: total,
		Skip:  params.Skip(),
		Limit: params.Limit,
		Page:  params.Page,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit]. Page is capped so that the
// derived offset fits in an int.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}

	return Params{Page: page, Limit: limit}
}

// SortFromRequest parses "sort_by" and "order" against a whitelist of
// API field names mapped to SQL columns. Unknown fields fall back to the default.
func SortFromRequest(r *http.Request, allowed map[string]string, fallback Sort) Sort {
	sort := fallback

	if column, ok := allowed[r.URL.Query().Get("sort_by")]; ok {
		sort.Field = column
	}

	switch strings.ToLower(r.URL.Query().Get("order")) {
	case "asc":
		sort.Direction = Asc
	case "desc":
		sort.Direction = Desc
	}

	return sort
}

// SQL renders the ORDER BY expression for the sort.
func (s Sort) SQL() string {
	direction := s.Direction
	if direction != Asc && direction != Desc {
		direction = Asc
	}
	return s.Field + " " + string(direction)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
