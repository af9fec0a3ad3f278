package career_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func serve(t *testing.T, router http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	var out envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return recorder.Code, out
}

func TestPublicCareers_OnlyActiveAndCategoryFilter(t *testing.T) {
	service, _ := newService()
	handler := career.NewHandler(service)

	router := chi.NewRouter()
	router.Mount("/api/v1/careers", handler.CareerRoutes())
	router.Mount("/api/v1/career-categories", handler.CategoryRoutes())
	router.Mount("/api/v2/public", handler.PublicRoutes())

	status, body := serve(t, router, http.MethodPost, "/api/v1/career-categories", `{"name":"IT"}`)
	require.Equal(t, http.StatusCreated, status)
	var it career.Category
	require.NoError(t, json.Unmarshal(body.Data, &it))

	status, _ = serve(t, router, http.MethodPost, "/api/v1/careers", `{"name":"Developer","category_ids":["`+it.ID+`"]}`)
	require.Equal(t, http.StatusCreated, status)

	status, body = serve(t, router, http.MethodPost, "/api/v1/careers", `{"name":"Retired role","is_active":false,"category_ids":["`+it.ID+`"]}`)
	require.Equal(t, http.StatusCreated, status)
	var retired career.Career
	require.NoError(t, json.Unmarshal(body.Data, &retired))

	status, body = serve(t, router, http.MethodGet, "/api/v2/public/careers?category_ids="+it.ID+",other&limit=5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Meta.Total)
	assert.Contains(t, string(body.Data), "Developer")

	status, _ = serve(t, router, http.MethodGet, "/api/v2/public/careers/"+retired.ID, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = serve(t, router, http.MethodGet, "/api/v2/public/career-categories", "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body.Meta)
	assert.Contains(t, string(body.Data), `"name":"IT"`)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	service, _ := newService()
	router := career.NewHandler(service).CategoryRoutes()

	status, body := serve(t, router, http.MethodDelete, "/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Career category not found", body.Message)
}
