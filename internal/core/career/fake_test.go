package career_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// memoryRepository is an in-memory stand-in for [career.PostgresRepository].
type memoryRepository struct {
	categories map[string]*career.Category
	careers    map[string]*career.Career
	links      map[string][]string // career id -> category ids
	criteria   map[string]int
	images     map[string]career.Image

	enrichCalls int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		categories: make(map[string]*career.Category),
		careers:    make(map[string]*career.Career),
		links:      make(map[string][]string),
		criteria:   make(map[string]int),
		images:     make(map[string]career.Image),
	}
}

func window[T any](items []T, limit, skip int) []T {
	if skip >= len(items) {
		return []T{}
	}
	return items[skip:min(len(items), skip+limit)]
}

// # Categories

func (repository *memoryRepository) ListCategories(_ context.Context, filter career.CategoryFilter, _ pagination.Sort, limit, skip int) ([]*career.Category, int, error) {
	all, _ := repository.AllCategories(context.Background())
	matched := all[:0]
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			matched = append(matched, c)
		}
	}
	return window(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) AllCategories(context.Context) ([]*career.Category, error) {
	all := make([]*career.Category, 0, len(repository.categories))
	for _, c := range repository.categories {
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (repository *memoryRepository) GetCategory(_ context.Context, id string) (*career.Category, error) {
	c, ok := repository.categories[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repository *memoryRepository) CategoryNameExists(_ context.Context, name, excludeID string) (bool, error) {
	for _, c := range repository.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) CreateCategory(_ context.Context, c *career.Category) error {
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	copied := *c
	repository.categories[c.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateCategory(ctx context.Context, id string, input career.UpdateCategoryInput) (*career.Category, error) {
	c, ok := repository.categories[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Name.HasValue() {
		c.Name = input.Name.Value
	}
	if input.Description.Set {
		c.Description = input.Description.Ptr()
	}
	return repository.GetCategory(ctx, id)
}

func (repository *memoryRepository) DeleteCategory(_ context.Context, id string) error {
	if _, ok := repository.categories[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.categories, id)
	for careerID, ids := range repository.links {
		repository.links[careerID] = slices.DeleteFunc(ids, func(v string) bool { return v == id })
	}
	return nil
}

func (repository *memoryRepository) MissingCategoryIDs(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if _, ok := repository.categories[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// # Careers

func (repository *memoryRepository) ListCareers(_ context.Context, filter career.Filter, _ pagination.Sort, limit, skip int) ([]*career.Career, int, error) {
	var matched []*career.Career
	for _, c := range repository.careers {
		if !strings.Contains(strings.ToLower(c.Name+" "+c.Code), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !slices.ContainsFunc(repository.links[c.ID], func(id string) bool {
			return slices.Contains(filter.CategoryIDs, id)
		}) {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return window(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) GetCareer(_ context.Context, id string) (*career.Career, error) {
	c, ok := repository.careers[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repository *memoryRepository) CodeExists(_ context.Context, code, excludeID string) (bool, error) {
	for _, c := range repository.careers {
		if c.Code == code && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) CreateCareer(_ context.Context, c *career.Career, categoryIDs []string) error {
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	copied := *c
	repository.careers[c.ID] = &copied
	repository.links[c.ID] = slices.Clone(categoryIDs)
	return nil
}

func (repository *memoryRepository) UpdateCareer(ctx context.Context, id string, input career.UpdateInput) (*career.Career, error) {
	c, ok := repository.careers[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Code.HasValue() {
		c.Code = input.Code.Value
	}
	if input.Name.HasValue() {
		c.Name = input.Name.Value
	}
	if input.Description.Set {
		c.Description = input.Description.Ptr()
	}
	if input.IsActive.HasValue() {
		c.IsActive = input.IsActive.Value
	}
	if input.CategoryIDs.Set {
		repository.links[id] = slices.Clone(input.CategoryIDs.Value)
	}
	return repository.GetCareer(ctx, id)
}

func (repository *memoryRepository) DeleteCareer(_ context.Context, id string) error {
	if _, ok := repository.careers[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.careers, id)
	delete(repository.links, id)
	return nil
}

// # Enrichment

func (repository *memoryRepository) CategoriesByCareer(_ context.Context, careerIDs []string) (map[string][]lookup.Ref, error) {
	repository.enrichCalls++

	result := make(map[string][]lookup.Ref)
	for _, careerID := range careerIDs {
		for _, categoryID := range repository.links[careerID] {
			if c, ok := repository.categories[categoryID]; ok {
				result[careerID] = append(result[careerID], lookup.Ref{ID: c.ID, Name: c.Name})
			}
		}
	}
	return result, nil
}

func (repository *memoryRepository) CriteriaCounts(_ context.Context, careerIDs []string) (map[string]int, error) {
	repository.enrichCalls++

	result := make(map[string]int)
	for _, id := range careerIDs {
		if n, ok := repository.criteria[id]; ok {
			result[id] = n
		}
	}
	return result, nil
}

func (repository *memoryRepository) Images(_ context.Context, careerIDs []string) (map[string]career.Image, error) {
	repository.enrichCalls++

	result := make(map[string]career.Image)
	for _, id := range careerIDs {
		if image, ok := repository.images[id]; ok {
			result[id] = image
		}
	}
	return result, nil
}
