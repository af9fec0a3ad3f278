// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves the named path identifier and rejects blank values.

Returns:
  - string: The trimmed identifier
  - error: apperr.ValidationError when the parameter is missing
*/
func ID(request *http.Request, name string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(request, name))
	if id == "" {
		return "", apperr.ValidationError(fmt.Sprintf("%s is required", name))
	}
	return id, nil
}

/*
PositiveInt parses a required query parameter that must be an integer > 0.

Parameters:
  - request: *http.Request
  - key: string (Query parameter name)
  - fallback: int (Used when the parameter is absent)

Returns:
  - int: The parsed value
  - error: apperr.ValidationError for non-numeric or non-positive input
*/
func PositiveInt(request *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, apperr.ValidationError(fmt.Sprintf("%s must be a positive integer", key))
	}
	return value, nil
}

/*
OptionalBool parses a boolean query parameter. Absent or unparsable values yield nil.
*/
func OptionalBool(request *http.Request, key string) *bool {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

/*
Query returns a trimmed query parameter value.
*/
func Query(request *http.Request, key string) string {
	return strings.TrimSpace(request.URL.Query().Get(key))
}
