package school

import (
	"context"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// Repository persists schools.
type Repository interface {
	ListSchools(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*School, int, error)
	GetSchool(ctx context.Context, id string) (*School, error)
	CreateSchool(ctx context.Context, school *School) error
	UpdateSchool(ctx context.Context, id string, input UpdateInput) (*School, error)
	DeleteSchool(ctx context.Context, id string) error

	// SchoolRefs resolves (id, name) pairs in one query.
	SchoolRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
}

// ClassRepository persists classes.
type ClassRepository interface {
	ListClasses(ctx context.Context, filter ClassFilter, sort pagination.Sort, limit, skip int) ([]*Class, int, error)
	GetClass(ctx context.Context, id string) (*Class, error)
	CreateClass(ctx context.Context, class *Class) error
	UpdateClass(ctx context.Context, id string, input UpdateClassInput) (*Class, error)
	DeleteClass(ctx context.Context, id string) error
}
