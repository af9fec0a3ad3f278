// Copyright (c) 2026 FutureKey. All rights reserved.

// Package query parses list-shaped URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string into a trimmed,
// de-duplicated slice of strings. Empty entries are dropped.
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		res = append(res, clean)
	}
	return res
}
