package career_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
)

func newService() (*career.Service, *memoryRepository) {
	repository := newMemoryRepository()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return career.NewService(repository, repository, logger), repository
}

var firstPage = pagination.Params{Page: 1, Limit: 20}

func TestCreateCategory_Uniqueness(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	engineering, err := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "Engineering", Description: pointer.To("  ")})
	require.NoError(t, err)
	assert.Nil(t, engineering.Description)

	_, err = service.CreateCategory(ctx, career.CreateCategoryInput{Name: "Engineering"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	health, _ := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "Health"})
	_, err = service.UpdateCategory(ctx, health.ID, career.UpdateCategoryInput{Name: patch.Of("Engineering")})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.UpdateCategory(ctx, engineering.ID, career.UpdateCategoryInput{Name: patch.Of("Engineering")})
	assert.NoError(t, err)
}

func TestCreateCareer_DerivesCodeAndEnriches(t *testing.T) {
	ctx := context.Background()
	service, repository := newService()

	it, _ := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "IT"})

	created, err := service.CreateCareer(ctx, career.CreateInput{
		Name:        "Kỹ sư phần mềm",
		CategoryIDs: []string{it.ID, it.ID, " "},
	})
	require.NoError(t, err)

	assert.Equal(t, "KY_SU_PHAN_MEM", created.Code)
	assert.True(t, created.IsActive)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "IT", created.Categories[0].Name)
	assert.Equal(t, 0, created.CriteriaCount)
	assert.Nil(t, created.Image)
	assert.Equal(t, []string{it.ID}, repository.links[created.ID])

	_, err = service.CreateCareer(ctx, career.CreateInput{Name: "Software engineer", Code: "ky_su_phan_mem"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestCreateCareer_UnknownCategory(t *testing.T) {
	service, _ := newService()

	_, err := service.CreateCareer(context.Background(), career.CreateInput{Name: "Nurse", CategoryIDs: []string{"nope"}})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Contains(t, ae.Details[0].Message, "nope")
}

func TestUpdateCareer_CategoryLinks(t *testing.T) {
	ctx := context.Background()
	service, repository := newService()

	it, _ := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "IT"})
	science, _ := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "Science"})
	created, _ := service.CreateCareer(ctx, career.CreateInput{Name: "Data scientist", CategoryIDs: []string{it.ID}})

	// Absent category_ids keeps links.
	updated, err := service.UpdateCareer(ctx, created.ID, career.UpdateInput{IsActive: patch.Of(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Len(t, updated.Categories, 1)

	// Supplied category_ids replaces them.
	updated, err = service.UpdateCareer(ctx, created.ID, career.UpdateInput{CategoryIDs: patch.Of([]string{science.ID})})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Science", updated.Categories[0].Name)

	// Null clears them.
	updated, err = service.UpdateCareer(ctx, created.ID, career.UpdateInput{CategoryIDs: patch.Null[[]string]()})
	require.NoError(t, err)
	assert.Empty(t, updated.Categories)
	assert.NotNil(t, updated.Categories)
	assert.Empty(t, repository.links[created.ID])

	_, err = service.UpdateCareer(ctx, created.ID, career.UpdateInput{Name: patch.Null[string]()})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.UpdateCareer(ctx, "missing", career.UpdateInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestListCareers_EnrichesWithOneQueryPerRelation(t *testing.T) {
	ctx := context.Background()
	service, repository := newService()

	it, _ := service.CreateCategory(ctx, career.CreateCategoryInput{Name: "IT"})
	for _, name := range []string{"Backend developer", "Frontend developer", "Tester"} {
		_, err := service.CreateCareer(ctx, career.CreateInput{Name: name, CategoryIDs: []string{it.ID}})
		require.NoError(t, err)
	}

	all, _, _ := service.ListCareers(ctx, career.Filter{}, pagination.Sort{}, firstPage)
	repository.criteria[all[0].ID] = 4
	repository.images[all[0].ID] = career.Image{ID: "m1", FileURL: "https://cdn/backend.png"}
	repository.enrichCalls = 0

	careers, total, err := service.ListCareers(ctx, career.Filter{}, pagination.Sort{}, firstPage)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, 3, repository.enrichCalls)
	assert.Equal(t, 4, careers[0].CriteriaCount)
	require.NotNil(t, careers[0].Image)
	assert.Equal(t, "https://cdn/backend.png", careers[0].Image.FileURL)
	assert.Nil(t, careers[1].Image)
}

func TestListCareers_EmptyPageSkipsEnrichment(t *testing.T) {
	service, repository := newService()

	careers, total, err := service.ListCareers(context.Background(), career.Filter{}, pagination.Sort{}, firstPage)
	require.NoError(t, err)

	assert.Empty(t, careers)
	assert.Zero(t, total)
	assert.Zero(t, repository.enrichCalls)
}

func TestDeleteCareer(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	created, _ := service.CreateCareer(ctx, career.CreateInput{Name: "Pilot"})

	require.NoError(t, service.DeleteCareer(ctx, created.ID))
	assert.True(t, apperr.HasCode(service.DeleteCareer(ctx, created.ID), apperr.CodeNotFound))
}
