// Copyright (c) 2026 FutureKey. All rights reserved.

package location

import (
	"context"
	"log/slog"
	"strings"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/validate"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/slug"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/uuid"
)

const maxNameLength = 255

// # Service Layer

// Service orchestrates province and commune management.
type Service struct {
	provinces ProvinceRepository
	communes  CommuneRepository
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(provinces ProvinceRepository, communes CommuneRepository, logger *slog.Logger) *Service {
	return &Service{
		provinces: provinces,
		communes:  communes,
		logger:    logger,
	}
}

// # Provinces

/*
ListProvinces retrieves a page of provinces matching the filter.

Parameters:
  - ctx: context.Context
  - filter: ProvinceFilter
  - sort: pagination.Sort (Whitelisted column and direction)
  - page: pagination.Params

Returns:
  - []*Province: The requested page
  - int: Total count matching the filter
  - error: Repository errors
*/
func (service *Service) ListProvinces(ctx context.Context, filter ProvinceFilter, sort pagination.Sort, page pagination.Params) ([]*Province, int, error) {
	return service.provinces.ListProvinces(ctx, filter, sort, page.Limit, page.Skip())
}

// GetProvince returns the province or a 404 [apperr.AppError].
func (service *Service) GetProvince(ctx context.Context, id string) (*Province, error) {
	province, err := service.provinces.GetProvince(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Province")
	}
	return province, nil
}

/*
CreateProvince validates and persists a new province.

Description: The name is normalized, then checked for duplicates. The check
and the insert are separate statements.

Returns:
  - *Province: The persisted entity
  - error: ValidationError, Conflict, or repository errors
*/
func (service *Service) CreateProvince(ctx context.Context, input CreateProvinceInput) (*Province, error) {
	name := slug.Normalize(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureProvinceNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	province := &Province{ID: uuid.New(), Name: name}
	if err := service.provinces.CreateProvince(ctx, province); err != nil {
		return nil, err
	}

	service.logger.Info("province_created", slog.String("province_id", province.ID), slog.String("name", name))
	return province, nil
}

/*
UpdateProvince applies the supplied fields to an existing province.

Returns:
  - *Province: The updated entity
  - error: NotFound, ValidationError, Conflict, or repository errors
*/
func (service *Service) UpdateProvince(ctx context.Context, id string, input UpdateProvinceInput) (*Province, error) {
	if _, err := service.GetProvince(ctx, id); err != nil {
		return nil, err
	}

	if input.Name.Set {
		if input.Name.Null {
			return nil, validate.RequiredError(FieldName, "This field cannot be null")
		}

		input.Name.Value = slug.Normalize(input.Name.Value)

		validator := &validate.Validator{}
		validator.Required(FieldName, input.Name.Value).MaxLen(FieldName, input.Name.Value, maxNameLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}

		if err := service.ensureProvinceNameFree(ctx, input.Name.Value, id); err != nil {
			return nil, err
		}
	}

	province, err := service.provinces.UpdateProvince(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Province")
	}

	service.logger.Info("province_updated", slog.String("province_id", id))
	return province, nil
}

// DeleteProvince removes a province. Its communes keep existing with no province.
func (service *Service) DeleteProvince(ctx context.Context, id string) error {
	if _, err := service.GetProvince(ctx, id); err != nil {
		return err
	}

	if err := service.provinces.DeleteProvince(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Province")
	}

	service.logger.Warn("province_deleted", slog.String("province_id", id))
	return nil
}

// ListProvinceCommunes lists the communes of one province, failing when it does not exist.
func (service *Service) ListProvinceCommunes(ctx context.Context, provinceID string, filter CommuneFilter, sort pagination.Sort, page pagination.Params) ([]*Commune, int, error) {
	if _, err := service.GetProvince(ctx, provinceID); err != nil {
		return nil, 0, err
	}

	filter.ProvinceID = provinceID
	return service.ListCommunes(ctx, filter, sort, page)
}

func (service *Service) ensureProvinceNameFree(ctx context.Context, name, excludeID string) error {
	exists, err := service.provinces.ProvinceNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Province name already exists")
	}
	return nil
}

// # Communes

// ListCommunes retrieves a page of communes with their province attached.
func (service *Service) ListCommunes(ctx context.Context, filter CommuneFilter, sort pagination.Sort, page pagination.Params) ([]*Commune, int, error) {
	communes, total, err := service.communes.ListCommunes(ctx, filter, sort, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, err
	}

	if err := service.attachProvinces(ctx, communes...); err != nil {
		return nil, 0, err
	}
	return communes, total, nil
}

// GetCommune returns the commune with its province attached.
func (service *Service) GetCommune(ctx context.Context, id string) (*Commune, error) {
	commune, err := service.communes.GetCommune(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Commune")
	}

	if err := service.attachProvinces(ctx, commune); err != nil {
		return nil, err
	}
	return commune, nil
}

/*
CreateCommune validates and persists a new commune.

Description: Rejects duplicate names (Conflict) and unknown provinces
(NotFound). A blank province_id is stored as NULL.

Returns:
  - *Commune: The persisted entity with its province attached
  - error: ValidationError, Conflict, NotFound, or repository errors
*/
func (service *Service) CreateCommune(ctx context.Context, input CreateCommuneInput) (*Commune, error) {
	name := slug.Normalize(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureCommuneNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	var provinceID *string
	if input.ProvinceID != nil && strings.TrimSpace(*input.ProvinceID) != "" {
		id := strings.TrimSpace(*input.ProvinceID)
		if _, err := service.GetProvince(ctx, id); err != nil {
			return nil, err
		}
		provinceID = &id
	}

	commune := &Commune{ID: uuid.New(), Name: name, ProvinceID: provinceID}
	if err := service.communes.CreateCommune(ctx, commune); err != nil {
		return nil, err
	}

	if err := service.attachProvinces(ctx, commune); err != nil {
		return nil, err
	}

	service.logger.Info("commune_created", slog.String("commune_id", commune.ID), slog.String("name", name))
	return commune, nil
}

/*
UpdateCommune applies the supplied fields to an existing commune.

Description: An explicit null (or blank) province_id detaches the commune
from its province.

Returns:
  - *Commune: The updated entity with its province attached
  - error: NotFound, ValidationError, Conflict, or repository errors
*/
func (service *Service) UpdateCommune(ctx context.Context, id string, input UpdateCommuneInput) (*Commune, error) {
	if _, err := service.communes.GetCommune(ctx, id); err != nil {
		return nil, dberr.NotFoundAs(err, "Commune")
	}

	if input.Name.Set {
		if input.Name.Null {
			return nil, validate.RequiredError(FieldName, "This field cannot be null")
		}

		input.Name.Value = slug.Normalize(input.Name.Value)

		validator := &validate.Validator{}
		validator.Required(FieldName, input.Name.Value).MaxLen(FieldName, input.Name.Value, maxNameLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}

		if err := service.ensureCommuneNameFree(ctx, input.Name.Value, id); err != nil {
			return nil, err
		}
	}

	if input.ProvinceID.HasValue() {
		input.ProvinceID.Value = strings.TrimSpace(input.ProvinceID.Value)
		if input.ProvinceID.Value == "" {
			input.ProvinceID = patch.Null[string]()
		} else if _, err := service.GetProvince(ctx, input.ProvinceID.Value); err != nil {
			return nil, err
		}
	}

	commune, err := service.communes.UpdateCommune(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Commune")
	}

	if err := service.attachProvinces(ctx, commune); err != nil {
		return nil, err
	}

	service.logger.Info("commune_updated", slog.String("commune_id", id))
	return commune, nil
}

// DeleteCommune removes a commune.
func (service *Service) DeleteCommune(ctx context.Context, id string) error {
	if _, err := service.communes.GetCommune(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Commune")
	}

	if err := service.communes.DeleteCommune(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Commune")
	}

	service.logger.Warn("commune_deleted", slog.String("commune_id", id))
	return nil
}

func (service *Service) ensureCommuneNameFree(ctx context.Context, name, excludeID string) error {
	exists, err := service.communes.CommuneNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Commune name already exists")
	}
	return nil
}

// # Enrichment

func (service *Service) attachProvinces(ctx context.Context, communes ...*Commune) error {
	return lookup.Attach(ctx, communes,
		func(c *Commune) *string { return c.ProvinceID },
		service.provinces.ProvinceRefs,
		func(c *Commune, ref *lookup.Ref) { c.Province = ref },
	)
}
