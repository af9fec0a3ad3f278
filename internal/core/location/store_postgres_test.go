//go:build integration

package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/location"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/testing/testdb"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

func TestPostgresRepository_Locations(t *testing.T) {
	db := testdb.Shared(t)
	repository := location.NewPostgresRepository(db.Pool)
	ctx := context.Background()

	hanoi := "p-hn"
	seed := func(t *testing.T) {
		t.Helper()
		db.Truncate(t, "provinces", "communes")

		require.NoError(t, repository.CreateProvince(ctx, &location.Province{ID: hanoi, Name: "Hà Nội"}))
		require.NoError(t, repository.CreateProvince(ctx, &location.Province{ID: "p-hp", Name: "Hải Phòng"}))
		require.NoError(t, repository.CreateCommune(ctx, &location.Commune{ID: "c1", Name: "Phường Ba Đình", ProvinceID: &hanoi}))
		require.NoError(t, repository.CreateCommune(ctx, &location.Commune{ID: "c2", Name: "Phường Hoàn Kiếm", ProvinceID: &hanoi}))
	}

	byName := pagination.Sort{Field: "name", Direction: pagination.Asc}

	t.Run("communes by province with paging", func(t *testing.T) {
		seed(t)

		items, total, err := repository.ListCommunes(ctx, location.CommuneFilter{ProvinceID: hanoi}, byName, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, items, 1)
		assert.Equal(t, "c2", items[0].ID)
	})

	t.Run("name uniqueness ignores the row itself", func(t *testing.T) {
		seed(t)

		exists, err := repository.CommuneNameExists(ctx, "Phường Ba Đình", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repository.CommuneNameExists(ctx, "Phường Ba Đình", "c1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("deleting a province detaches its communes", func(t *testing.T) {
		seed(t)

		require.NoError(t, repository.DeleteProvince(ctx, hanoi))

		commune, err := repository.GetCommune(ctx, "c1")
		require.NoError(t, err)
		assert.Nil(t, commune.ProvinceID)

		assert.ErrorIs(t, repository.DeleteProvince(ctx, hanoi), dberr.ErrNotFound)
	})

	t.Run("province refs", func(t *testing.T) {
		seed(t)

		refs, err := repository.ProvinceRefs(ctx, []string{hanoi, "missing"})
		require.NoError(t, err)
		assert.Equal(t, "Hà Nội", refs[hanoi].Name)
		assert.Len(t, refs, 1)
	})
}
