// Copyright (c) 2026 FutureKey. All rights reserved.

package career

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/validate"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/slice"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/slug"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/uuid"
)

// # Service Layer

// Service orchestrates the career catalogue.
type Service struct {
	categories CategoryRepository
	careers    Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(categories CategoryRepository, careers Repository, logger *slog.Logger) *Service {
	return &Service{
		categories: categories,
		careers:    careers,
		logger:     logger,
	}
}

// # Categories

// ListCategories retrieves a page of categories.
func (service *Service) ListCategories(ctx context.Context, filter CategoryFilter, sort pagination.Sort, page pagination.Params) ([]*Category, int, error) {
	return service.categories.ListCategories(ctx, filter, sort, page.Limit, page.Skip())
}

// AllCategories returns every category ordered by name, for the public catalogue.
func (service *Service) AllCategories(ctx context.Context) ([]*Category, error) {
	return service.categories.AllCategories(ctx)
}

// GetCategory returns the category or a 404 [apperr.AppError].
func (service *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	category, err := service.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Career category")
	}
	return category, nil
}

/*
CreateCategory validates and persists a new category.

Returns:
  - *Category: The persisted entity
  - error: ValidationError, Conflict on a duplicate name, or repository errors
*/
func (service *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name := slug.Normalize(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureCategoryNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	category := &Category{ID: uuid.New(), Name: name, Description: pointer.Trimmed(input.Description)}
	if err := service.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	service.logger.Info("career_category_created", slog.String("category_id", category.ID), slog.String("name", name))
	return category, nil
}

// UpdateCategory applies the supplied fields to an existing category.
func (service *Service) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	if _, err := service.GetCategory(ctx, id); err != nil {
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

		if err := service.ensureCategoryNameFree(ctx, input.Name.Value, id); err != nil {
			return nil, err
		}
	}

	category, err := service.categories.UpdateCategory(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Career category")
	}

	service.logger.Info("career_category_updated", slog.String("category_id", id))
	return category, nil
}

// DeleteCategory removes a category and its career links.
func (service *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := service.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := service.categories.DeleteCategory(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Career category")
	}

	service.logger.Warn("career_category_deleted", slog.String("category_id", id))
	return nil
}

func (service *Service) ensureCategoryNameFree(ctx context.Context, name, excludeID string) error {
	exists, err := service.categories.CategoryNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Career category name already exists")
	}
	return nil
}

// # Careers

/*
ListCareers retrieves a page of careers with categories, criteria count and image.

Parameters:
  - ctx: context.Context
  - filter: Filter (Search, activity and category constraints)
  - sort: pagination.Sort
  - page: pagination.Params

Returns:
  - []*Career: The enriched page
  - int: Total count matching the filter
  - error: Repository errors
*/
func (service *Service) ListCareers(ctx context.Context, filter Filter, sort pagination.Sort, page pagination.Params) ([]*Career, int, error) {
	careers, total, err := service.careers.ListCareers(ctx, filter, sort, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, err
	}

	if err := service.enrich(ctx, careers...); err != nil {
		return nil, 0, err
	}
	return careers, total, nil
}

// GetCareer returns the enriched career or a 404 [apperr.AppError].
func (service *Service) GetCareer(ctx context.Context, id string) (*Career, error) {
	career, err := service.careers.GetCareer(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Career")
	}

	if err := service.enrich(ctx, career); err != nil {
		return nil, err
	}
	return career, nil
}

/*
CreateCareer validates and persists a new career with its category links.

Description: The code defaults to an upper-case rendering of the name. Codes
must be unique (Conflict) and every category must exist (NotFound).

Returns:
  - *Career: The enriched entity
  - error: ValidationError, Conflict, NotFound, or repository errors
*/
func (service *Service) CreateCareer(ctx context.Context, input CreateInput) (*Career, error) {
	name := slug.Normalize(input.Name)
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = slug.Code(name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	validator.Required(FieldCode, code).MaxLen(FieldCode, code, maxCodeLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureCodeFree(ctx, code, ""); err != nil {
		return nil, err
	}

	categoryIDs := cleanIDs(input.CategoryIDs)
	if err := service.ensureCategoriesExist(ctx, categoryIDs); err != nil {
		return nil, err
	}

	career := &Career{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		Description: pointer.Trimmed(input.Description),
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := service.careers.CreateCareer(ctx, career, categoryIDs); err != nil {
		return nil, err
	}

	if err := service.enrich(ctx, career); err != nil {
		return nil, err
	}

	service.logger.Info("career_created", slog.String("career_id", career.ID), slog.String("code", code))
	return career, nil
}

/*
UpdateCareer applies the supplied fields to an existing career.

Description: A supplied category_ids array (including [] or null) replaces
every link in the same transaction as the field update.

Returns:
  - *Career: The enriched entity
  - error: NotFound, ValidationError, Conflict, or repository errors
*/
func (service *Service) UpdateCareer(ctx context.Context, id string, input UpdateInput) (*Career, error) {
	if _, err := service.careers.GetCareer(ctx, id); err != nil {
		return nil, dberr.NotFoundAs(err, "Career")
	}

	validator := &validate.Validator{}
	if input.Name.Set {
		input.Name.Value = slug.Normalize(input.Name.Value)
		validator.Custom(FieldName, input.Name.Null, "This field cannot be null")
		validator.Required(FieldName, input.Name.Value).MaxLen(FieldName, input.Name.Value, maxNameLength)
	}
	if input.Code.Set {
		input.Code.Value = strings.ToUpper(strings.TrimSpace(input.Code.Value))
		validator.Custom(FieldCode, input.Code.Null, "This field cannot be null")
		validator.Required(FieldCode, input.Code.Value).MaxLen(FieldCode, input.Code.Value, maxCodeLength)
	}
	validator.Custom(FieldIsActive, input.IsActive.Set && input.IsActive.Null, "This field cannot be null")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Code.HasValue() {
		if err := service.ensureCodeFree(ctx, input.Code.Value, id); err != nil {
			return nil, err
		}
	}

	if input.CategoryIDs.Set {
		input.CategoryIDs.Value = cleanIDs(input.CategoryIDs.Value)
		if err := service.ensureCategoriesExist(ctx, input.CategoryIDs.Value); err != nil {
			return nil, err
		}
	}
	if input.Description.HasValue() {
		input.Description.Value = strings.TrimSpace(input.Description.Value)
	}

	career, err := service.careers.UpdateCareer(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Career")
	}

	if err := service.enrich(ctx, career); err != nil {
		return nil, err
	}

	service.logger.Info("career_updated", slog.String("career_id", id))
	return career, nil
}

// DeleteCareer removes a career with its criteria and category links.
func (service *Service) DeleteCareer(ctx context.Context, id string) error {
	if _, err := service.careers.GetCareer(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Career")
	}

	if err := service.careers.DeleteCareer(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Career")
	}

	service.logger.Warn("career_deleted", slog.String("career_id", id))
	return nil
}

func (service *Service) ensureCodeFree(ctx context.Context, code, excludeID string) error {
	exists, err := service.careers.CodeExists(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Career code already exists")
	}
	return nil
}

func (service *Service) ensureCategoriesExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	missing, err := service.categories.MissingCategoryIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		notFound := apperr.NotFound("Career category")
		notFound.Details = []apperr.FieldError{{
			Field:   FieldCategoryIDs,
			Message: fmt.Sprintf("Unknown ids: %s", strings.Join(missing, ", ")),
		}}
		return notFound
	}
	return nil
}

// # Enrichment

// enrich attaches categories, criteria counts and images, one query per relation.
func (service *Service) enrich(ctx context.Context, careers ...*Career) error {
	id := func(c *Career) *string { return &c.ID }

	if err := lookup.Attach(ctx, careers, id, service.careers.CategoriesByCareer,
		func(c *Career, refs *[]lookup.Ref) {
			c.Categories = []lookup.Ref{}
			if refs != nil {
				c.Categories = *refs
			}
		},
	); err != nil {
		return err
	}

	if err := lookup.Attach(ctx, careers, id, service.careers.CriteriaCounts,
		func(c *Career, count *int) {
			c.CriteriaCount = 0
			if count != nil {
				c.CriteriaCount = *count
			}
		},
	); err != nil {
		return err
	}

	return lookup.Attach(ctx, careers, id, service.careers.Images,
		func(c *Career, image *Image) { c.Image = image },
	)
}

// cleanIDs trims, drops blanks and de-duplicates ids.
func cleanIDs(ids []string) []string {
	return slice.Unique(slice.Map(ids, strings.TrimSpace))
}
