package location

import (
	"context"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// ProvinceRepository persists provinces.
type ProvinceRepository interface {
	ListProvinces(ctx context.Context, filter ProvinceFilter, sort pagination.Sort, limit, skip int) ([]*Province, int, error)
	GetProvince(ctx context.Context, id string) (*Province, error)
	ProvinceNameExists(ctx context.Context, name, excludeID string) (bool, error)
	CreateProvince(ctx context.Context, province *Province) error
	UpdateProvince(ctx context.Context, id string, input UpdateProvinceInput) (*Province, error)
	DeleteProvince(ctx context.Context, id string) error

	// ProvinceRefs resolves (id, name) pairs in one query.
	ProvinceRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
}

// CommuneRepository persists communes.
type CommuneRepository interface {
	ListCommunes(ctx context.Context, filter CommuneFilter, sort pagination.Sort, limit, skip int) ([]*Commune, int, error)
	GetCommune(ctx context.Context, id string) (*Commune, error)
	CommuneNameExists(ctx context.Context, name, excludeID string) (bool, error)
	CreateCommune(ctx context.Context, commune *Commune) error
	UpdateCommune(ctx context.Context, id string, input UpdateCommuneInput) (*Commune, error)
	DeleteCommune(ctx context.Context, id string) error
}
