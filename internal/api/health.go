// Copyright (c) 2026 FutureKey. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/constants"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
//
// A nil checker is skipped, so deployments without Redis report only postgres.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "Service is alive", map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	results := make([]checkResult, 0, 2)
	ready := true

	check := func(name string, fn func(context.Context) error) {
		if fn == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := fn(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			handler.logger.ErrorContext(ctx, "readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	check("postgres", handler.dependencies.CheckDatabase)
	check("redis", handler.dependencies.CheckCache)

	data := map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	}

	if !ready {
		data[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.Envelope{
			Success: false,
			Message: "Service is not ready",
			Data:    data,
		})
		return
	}

	respond.OK(writer, "Service is ready", data)
}
