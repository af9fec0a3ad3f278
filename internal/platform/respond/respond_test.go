// Copyright (c) 2026 FutureKey. All rights reserved.

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, "Province retrieved", map[string]string{"name": "Hanoi"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Province retrieved", body["message"])
	assert.Equal(t, "Hanoi", body["data"].(map[string]any)["name"])
	assert.NotContains(t, body, "meta")
}

func TestPaginated_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 10}, 12)
	respond.Paginated(recorder, "Communes retrieved", []string{"a", "b"}, meta)

	body := decode(t, recorder)
	metaBody := body["meta"].(map[string]any)
	assert.EqualValues(t, 12, metaBody["total"])
	assert.EqualValues(t, 10, metaBody["skip"])
	assert.EqualValues(t, 10, metaBody["limit"])
	assert.EqualValues(t, 2, metaBody["page"])
}

func TestError_MapsAppErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not_found", apperr.NotFound("Commune"), http.StatusNotFound, "Commune not found"},
		{"conflict", apperr.Conflict("Commune name already exists"), http.StatusConflict, "Commune name already exists"},
		{"validation", apperr.ValidationError("limit must be a positive integer"), http.StatusBadRequest, "limit must be a positive integer"},
		{"unknown", errors.New("pq: deadlock detected"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			body := decode(t, recorder)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.msg, body["message"])
		})
	}
}
