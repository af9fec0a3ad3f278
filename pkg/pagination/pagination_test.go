// Copyright (c) 2026 FutureKey. All rights reserved.

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
		skip  int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "?page=3&limit=10", 3, 10, 20},
		{"negative_page", "?page=-2&limit=5", 1, 5, 0},
		{"zero_limit", "?limit=0", 1, 20, 0},
		{"limit_above_max", "?limit=500", 1, 100, 0},
		{"garbage", "?page=abc&limit=xyz", 1, 20, 0},
		{"page_overflow", "?page=9223372036854775807&limit=20", math.MaxInt/20 + 1, 20, math.MaxInt / 20 * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/items"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.skip, params.Skip())
		})
	}
}

func TestSkip_NeverNegative(t *testing.T) {
	assert.Equal(t, math.MaxInt, pagination.Params{Page: math.MaxInt, Limit: 20}.Skip())
	assert.Equal(t, 0, pagination.Params{Page: 5, Limit: 0}.Skip())

	meta := pagination.NewMeta(pagination.Params{Page: math.MaxInt, Limit: 100}, 3)
	assert.GreaterOrEqual(t, meta.Skip, 0)
	assert.Equal(t, 3, meta.Total)
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 25}, 61)

	assert.Equal(t, pagination.Meta{Total: 61, Skip: 25, Limit: 25, Page: 2}, meta)
}

func TestSortFromRequest(t *testing.T) {
	allowed := map[string]string{"name": "name", "created_at": "created_at"}
	fallback := pagination.Sort{Field: "created_at", Direction: pagination.Desc}

	request := httptest.NewRequest("GET", "/items?sort_by=name&order=asc", nil)
	assert.Equal(t, "name ASC", pagination.SortFromRequest(request, allowed, fallback).SQL())

	// Unknown columns never reach SQL.
	request = httptest.NewRequest("GET", "/items?sort_by=name;DROP%20TABLE&order=sideways", nil)
	assert.Equal(t, "created_at DESC", pagination.SortFromRequest(request, allowed, fallback).SQL())
}
