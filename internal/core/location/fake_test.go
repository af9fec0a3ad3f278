package location_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/location"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// memoryRepository is an in-memory stand-in for [location.PostgresRepository].
type memoryRepository struct {
	provinces map[string]*location.Province
	communes  map[string]*location.Commune
	refCalls  [][]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		provinces: make(map[string]*location.Province),
		communes:  make(map[string]*location.Commune),
	}
}

func page[T any](items []T, limit, skip int) []T {
	if skip >= len(items) {
		return []T{}
	}
	return items[skip:min(len(items), skip+limit)]
}

func (repository *memoryRepository) ListProvinces(_ context.Context, filter location.ProvinceFilter, _ pagination.Sort, limit, skip int) ([]*location.Province, int, error) {
	var matched []*location.Province
	for _, p := range repository.provinces {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			copied := *p
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) GetProvince(_ context.Context, id string) (*location.Province, error) {
	p, ok := repository.provinces[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (repository *memoryRepository) ProvinceNameExists(_ context.Context, name, excludeID string) (bool, error) {
	for _, p := range repository.provinces {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) CreateProvince(_ context.Context, p *location.Province) error {
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	copied := *p
	repository.provinces[p.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateProvince(ctx context.Context, id string, input location.UpdateProvinceInput) (*location.Province, error) {
	p, ok := repository.provinces[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Name.HasValue() {
		p.Name = input.Name.Value
	}
	return repository.GetProvince(ctx, id)
}

func (repository *memoryRepository) DeleteProvince(_ context.Context, id string) error {
	if _, ok := repository.provinces[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.provinces, id)
	for _, c := range repository.communes {
		if c.ProvinceID != nil && *c.ProvinceID == id {
			c.ProvinceID = nil
		}
	}
	return nil
}

func (repository *memoryRepository) ProvinceRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls = append(repository.refCalls, ids)

	refs := make(map[string]lookup.Ref)
	for _, id := range ids {
		if p, ok := repository.provinces[id]; ok {
			refs[id] = lookup.Ref{ID: p.ID, Name: p.Name}
		}
	}
	return refs, nil
}

func (repository *memoryRepository) ListCommunes(_ context.Context, filter location.CommuneFilter, _ pagination.Sort, limit, skip int) ([]*location.Commune, int, error) {
	var matched []*location.Commune
	for _, c := range repository.communes {
		name := strings.ToLower(c.Name)
		if !strings.Contains(name, strings.ToLower(filter.Search)) || !strings.Contains(name, strings.ToLower(filter.Name)) {
			continue
		}
		if filter.ProvinceID != "" && (c.ProvinceID == nil || *c.ProvinceID != filter.ProvinceID) {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) GetCommune(_ context.Context, id string) (*location.Commune, error) {
	c, ok := repository.communes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repository *memoryRepository) CommuneNameExists(_ context.Context, name, excludeID string) (bool, error) {
	for _, c := range repository.communes {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) CreateCommune(_ context.Context, c *location.Commune) error {
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	copied := *c
	repository.communes[c.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateCommune(ctx context.Context, id string, input location.UpdateCommuneInput) (*location.Commune, error) {
	c, ok := repository.communes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Name.HasValue() {
		c.Name = input.Name.Value
	}
	if input.ProvinceID.Set {
		c.ProvinceID = input.ProvinceID.Ptr()
	}
	return repository.GetCommune(ctx, id)
}

func (repository *memoryRepository) DeleteCommune(_ context.Context, id string) error {
	if _, ok := repository.communes[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.communes, id)
	return nil
}
