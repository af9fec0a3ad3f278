//go:build integration

package career_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/testing/testdb"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

func TestPostgresRepository_Careers(t *testing.T) {
	db := testdb.Shared(t)
	repository := career.NewPostgresRepository(db.Pool)
	ctx := context.Background()

	seed := func(t *testing.T) {
		t.Helper()
		db.Truncate(t, "careers", "career_categories", "metadata")

		for _, c := range []*career.Category{{ID: "cat-it", Name: "Information Technology"}, {ID: "cat-health", Name: "Health"}} {
			require.NoError(t, repository.CreateCategory(ctx, c))
		}
		require.NoError(t, repository.CreateCareer(ctx,
			&career.Career{ID: "c1", Code: "KY_SU_PHAN_MEM", Name: "Kỹ sư phần mềm", IsActive: true},
			[]string{"cat-it"}))
		require.NoError(t, repository.CreateCareer(ctx,
			&career.Career{ID: "c2", Code: "BAC_SI", Name: "Bác sĩ", IsActive: false},
			[]string{"cat-health", "cat-it"}))
	}

	byName := pagination.Sort{Field: "name", Direction: pagination.Asc}

	t.Run("category filter and active flag", func(t *testing.T) {
		seed(t)
		active := true

		items, total, err := repository.ListCareers(ctx, career.Filter{CategoryIDs: []string{"cat-it"}}, byName, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, items, 2)

		items, total, err = repository.ListCareers(ctx, career.Filter{CategoryIDs: []string{"cat-it"}, IsActive: &active}, byName, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "c1", items[0].ID)
	})

	t.Run("categories by career are name ordered", func(t *testing.T) {
		seed(t)

		links, err := repository.CategoriesByCareer(ctx, []string{"c1", "c2"})
		require.NoError(t, err)
		require.Len(t, links["c2"], 2)
		assert.Equal(t, "Health", links["c2"][0].Name)
		assert.Equal(t, "Information Technology", links["c2"][1].Name)
	})

	t.Run("update resyncs links only when supplied", func(t *testing.T) {
		seed(t)

		_, err := repository.UpdateCareer(ctx, "c2", career.UpdateInput{Name: patch.Field[string]{Set: true, Value: "Bác sĩ đa khoa"}})
		require.NoError(t, err)

		links, err := repository.CategoriesByCareer(ctx, []string{"c2"})
		require.NoError(t, err)
		assert.Len(t, links["c2"], 2)

		_, err = repository.UpdateCareer(ctx, "c2", career.UpdateInput{CategoryIDs: patch.Field[[]string]{Set: true, Value: []string{}}})
		require.NoError(t, err)

		links, err = repository.CategoriesByCareer(ctx, []string{"c2"})
		require.NoError(t, err)
		assert.Empty(t, links["c2"])
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		seed(t)

		err := repository.CreateCareer(ctx, &career.Career{ID: "c3", Code: "BAC_SI", Name: "Other", IsActive: true}, nil)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("missing category ids", func(t *testing.T) {
		seed(t)

		missing, err := repository.MissingCategoryIDs(ctx, []string{"cat-it", "nope"})
		require.NoError(t, err)
		assert.Equal(t, []string{"nope"}, missing)
	})

	t.Run("latest image wins", func(t *testing.T) {
		seed(t)

		_, err := db.Pool.Exec(ctx, `
			INSERT INTO metadata (id, object_type, object_id, file_name, file_url, file_size, created_at) VALUES
			('m1', 'CAREER', 'c1', 'old.png', '/files/old.png', 10, NOW() - INTERVAL '1 day'),
			('m2', 'CAREER', 'c1', 'new.png', '/files/new.png', 20, NOW())
		`)
		require.NoError(t, err)

		images, err := repository.Images(ctx, []string{"c1", "c2"})
		require.NoError(t, err)
		assert.Equal(t, "new.png", images["c1"].FileName)
		assert.NotContains(t, images, "c2")
	})

	t.Run("delete", func(t *testing.T) {
		seed(t)

		require.NoError(t, repository.DeleteCareer(ctx, "c1"))
		assert.ErrorIs(t, repository.DeleteCareer(ctx, "c1"), dberr.ErrNotFound)
	})
}
