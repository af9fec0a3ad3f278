// Copyright (c) 2026 FutureKey. All rights reserved.

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huyhoang189/futurekey-be-sub002/pkg/convert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("", 7))
	assert.Equal(t, 7, convert.ToIntD("seven", 7))
	assert.Equal(t, 42, convert.ToIntD(" 42 ", 7))
	assert.Equal(t, -3, convert.ToIntD("-3", 7))
}
