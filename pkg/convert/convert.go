// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package convert provides fault-tolerant type conversions.

It wraps [strconv] to return a default instead of an error. This suits
query parameters that clamp to a fallback, such as paging.

Do not use this package where malformed input must be rejected; parse
explicitly with [strconv] instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if it is empty or malformed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}
