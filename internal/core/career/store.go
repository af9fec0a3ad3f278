package career

import (
	"context"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// CategoryRepository persists career categories.
type CategoryRepository interface {
	ListCategories(ctx context.Context, filter CategoryFilter, sort pagination.Sort, limit, skip int) ([]*Category, int, error)
	AllCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CategoryNameExists(ctx context.Context, name, excludeID string) (bool, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// MissingCategoryIDs returns the ids that match no category.
	MissingCategoryIDs(ctx context.Context, ids []string) ([]string, error)
}

// Repository persists careers and their category links.
type Repository interface {
	ListCareers(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*Career, int, error)
	GetCareer(ctx context.Context, id string) (*Career, error)
	CodeExists(ctx context.Context, code, excludeID string) (bool, error)

	// CreateCareer inserts the career and its category links in one transaction.
	CreateCareer(ctx context.Context, career *Career, categoryIDs []string) error

	// UpdateCareer applies the supplied fields and, when present, replaces the
	// category links, in one transaction.
	UpdateCareer(ctx context.Context, id string, input UpdateInput) (*Career, error)
	DeleteCareer(ctx context.Context, id string) error

	// # Enrichment (one query per relation, keyed by career id)

	CategoriesByCareer(ctx context.Context, careerIDs []string) (map[string][]lookup.Ref, error)
	CriteriaCounts(ctx context.Context, careerIDs []string) (map[string]int, error)
	Images(ctx context.Context, careerIDs []string) (map[string]Image, error)
}
