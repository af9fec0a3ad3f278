// Copyright (c) 2026 FutureKey. All rights reserved.

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	return recorder.Body.String()
}

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(metrics.InstrumentHandler)
	router.Get("/provinces/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/provinces/P1", nil))

	body := scrape(t)
	assert.Contains(t, body, `futurekey_http_requests_total{method="GET",route="/provinces/{id}",status="404"}`)
	assert.False(t, strings.Contains(body, `route="/provinces/P1"`))
}

func TestObserveQuery(t *testing.T) {
	failure := errors.New("boom")
	var success error

	metrics.ObserveQuery("test_operation", time.Now(), &failure)
	metrics.ObserveQuery("test_operation", time.Now(), &success)

	body := scrape(t)
	assert.Contains(t, body, `futurekey_store_queries_total{operation="test_operation",outcome="error"} 1`)
	assert.Contains(t, body, `futurekey_store_queries_total{operation="test_operation",outcome="ok"} 1`)
}
