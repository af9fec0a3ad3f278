// Copyright (c) 2026 FutureKey. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Error) follows the same JSON envelope:
//
//	{ "success": true,  "message": "...", "data": ..., "meta": {...} }
//	{ "success": false, "message": "...", "code": "...", "details": [...] }
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/ctxutil"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// Envelope is the JSON envelope for successful responses.
type Envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, message string, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: &metadata})
}

// Message writes a 200 OK response carrying only a message (e.g. after a delete).
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())
	requestID := ctxutil.GetRequestID(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Success: false,
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
