// Copyright (c) 2026 FutureKey. All rights reserved.

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/futurekey", convertToPgx5DSN("postgres://u:p@db:5432/futurekey"))
	assert.Equal(t, "pgx5://u:p@db/futurekey", convertToPgx5DSN("postgresql://u:p@db/futurekey"))
	assert.Equal(t, "pgx5://db/futurekey", convertToPgx5DSN("pgx5://db/futurekey"))
}
