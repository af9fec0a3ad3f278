// Copyright (c) 2026 FutureKey. All rights reserved.

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
)

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"absent_uses_fallback", "", 5, false},
		{"valid", "?limit=3", 3, false},
		{"zero", "?limit=0", 0, true},
		{"negative", "?limit=-1", 0, true},
		{"non_numeric", "?limit=ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			got, err := requestutil.PositiveInt(request, "limit", 5)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID(t *testing.T) {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("id", "  ")
	request := httptest.NewRequest(http.MethodGet, "/x", nil)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))

	_, err := requestutil.ID(request, "id")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"Hanoi"}`))
	require.NoError(t, requestutil.DecodeJSON(request, &target))
	assert.Equal(t, "Hanoi", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":`))
	assert.True(t, apperr.HasCode(requestutil.DecodeJSON(request, &target), apperr.CodeValidation))
}

func TestOptionalBool(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/x?is_active=true", nil)
	value := requestutil.OptionalBool(request, "is_active")
	require.NotNil(t, value)
	assert.True(t, *value)

	request = httptest.NewRequest(http.MethodGet, "/x?is_active=maybe", nil)
	assert.Nil(t, requestutil.OptionalBool(request, "is_active"))
}
