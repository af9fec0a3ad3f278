// Copyright (c) 2026 FutureKey. All rights reserved.

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
)

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "Hanoi", *pointer.To("Hanoi"))
	assert.Nil(t, pointer.NilIfEmpty(""))
	assert.Nil(t, pointer.NilIfEmpty(0))
	assert.Equal(t, "x", *pointer.NilIfEmpty("x"))
}

func TestTrimmed(t *testing.T) {
	assert.Nil(t, pointer.Trimmed(nil))
	assert.Nil(t, pointer.Trimmed(pointer.To("   ")))
	assert.Equal(t, "Ba Dinh", *pointer.Trimmed(pointer.To("  Ba Dinh ")))
}
