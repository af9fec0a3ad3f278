// Copyright (c) 2026 FutureKey. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/ctxutil"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/middleware"
)

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.StructuredLogger(logger)(middleware.PanicRecovery()(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"success":false,"message":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool { return c.development }
func (c corsConfig) Origins() []string   { return c.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://admin.futurekey.vn"}})(ok)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://admin.futurekey.vn")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://admin.futurekey.vn", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.9:5123"
	assert.Equal(t, "10.0.0.9", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}

func TestLocalLimiter_BurstThenReject(t *testing.T) {
	limiter := middleware.NewLocalLimiter(1, 2)

	for range 2 {
		allowed, _, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Other clients keep their own bucket.
	allowed, _, _ = limiter.Allow(context.Background(), "5.6.7.8")
	assert.True(t, allowed)
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return s.allowed, 1500 * time.Millisecond, s.err
}

func TestRateLimit(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RateLimit(stubLimiter{allowed: false})(ok).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "2", recorder.Header().Get("Retry-After"))
	assert.Contains(t, recorder.Body.String(), `"code":"RATE_LIMITED"`)

	recorder = httptest.NewRecorder()
	middleware.RateLimit(stubLimiter{err: errors.New("redis down")})(ok).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
