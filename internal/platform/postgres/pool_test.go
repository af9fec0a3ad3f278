// Copyright (c) 2026 FutureKey. All rights reserved.

package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolOptions_WithDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input PoolOptions
		want  PoolOptions
	}{
		{"zero value", PoolOptions{}, DefaultPoolOptions},
		{"explicit values kept", PoolOptions{MaxConns: 10, MinConns: 2, StatementTimeout: time.Second},
			PoolOptions{MaxConns: 10, MinConns: 2, StatementTimeout: time.Second}},
		{"min above max is clamped", PoolOptions{MaxConns: 3, MinConns: 8},
			PoolOptions{MaxConns: 3, MinConns: 3, StatementTimeout: DefaultPoolOptions.StatementTimeout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.withDefaults())
		})
	}
}
