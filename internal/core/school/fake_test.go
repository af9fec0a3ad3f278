package school_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/school"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// memoryRepository is an in-memory stand-in for [school.PostgresRepository].
type memoryRepository struct {
	schools  map[string]*school.School
	classes  map[string]*school.Class
	refCalls [][]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		schools: make(map[string]*school.School),
		classes: make(map[string]*school.Class),
	}
}

func page[T any](items []T, limit, skip int) []T {
	if skip >= len(items) {
		return []T{}
	}
	return items[skip:min(len(items), skip+limit)]
}

func (repository *memoryRepository) ListSchools(_ context.Context, filter school.Filter, _ pagination.Sort, limit, skip int) ([]*school.School, int, error) {
	var matched []*school.School
	for _, s := range repository.schools {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			copied := *s
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) GetSchool(_ context.Context, id string) (*school.School, error) {
	s, ok := repository.schools[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (repository *memoryRepository) CreateSchool(_ context.Context, s *school.School) error {
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	copied := *s
	repository.schools[s.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateSchool(ctx context.Context, id string, input school.UpdateInput) (*school.School, error) {
	s, ok := repository.schools[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Name.HasValue() {
		s.Name = input.Name.Value
	}
	if input.Address.Set {
		s.Address = input.Address.Ptr()
	}
	if input.PhoneNumber.Set {
		s.PhoneNumber = input.PhoneNumber.Ptr()
	}
	if input.ContactEmail.Set {
		s.ContactEmail = input.ContactEmail.Ptr()
	}
	return repository.GetSchool(ctx, id)
}

func (repository *memoryRepository) DeleteSchool(_ context.Context, id string) error {
	if _, ok := repository.schools[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.schools, id)
	for classID, c := range repository.classes {
		if c.SchoolID == id {
			delete(repository.classes, classID)
		}
	}
	return nil
}

func (repository *memoryRepository) SchoolRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls = append(repository.refCalls, ids)

	refs := make(map[string]lookup.Ref, len(ids))
	for _, id := range ids {
		if s, ok := repository.schools[id]; ok {
			refs[id] = lookup.Ref{ID: s.ID, Name: s.Name}
		}
	}
	return refs, nil
}

func (repository *memoryRepository) ListClasses(_ context.Context, filter school.ClassFilter, _ pagination.Sort, limit, skip int) ([]*school.Class, int, error) {
	var matched []*school.Class
	for _, c := range repository.classes {
		if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.SchoolID != "" && c.SchoolID != filter.SchoolID {
			continue
		}
		if filter.GradeLevel > 0 && c.GradeLevel != filter.GradeLevel {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, limit, skip), len(matched), nil
}

func (repository *memoryRepository) GetClass(_ context.Context, id string) (*school.Class, error) {
	c, ok := repository.classes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repository *memoryRepository) CreateClass(_ context.Context, c *school.Class) error {
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	copied := *c
	repository.classes[c.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateClass(ctx context.Context, id string, input school.UpdateClassInput) (*school.Class, error) {
	c, ok := repository.classes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Name.HasValue() {
		c.Name = input.Name.Value
	}
	if input.GradeLevel.HasValue() {
		c.GradeLevel = input.GradeLevel.Value
	}
	if input.SchoolID.HasValue() {
		c.SchoolID = input.SchoolID.Value
	}
	return repository.GetClass(ctx, id)
}

func (repository *memoryRepository) DeleteClass(_ context.Context, id string) error {
	if _, ok := repository.classes[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.classes, id)
	return nil
}
