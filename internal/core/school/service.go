// Copyright (c) 2026 FutureKey. All rights reserved.

package school

import (
	"context"
	"log/slog"
	"strings"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/validate"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/slug"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/uuid"
)

// # Service Layer

// Service orchestrates school and class management.
type Service struct {
	schools Repository
	classes ClassRepository
	logger  *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(schools Repository, classes ClassRepository, logger *slog.Logger) *Service {
	return &Service{
		schools: schools,
		classes: classes,
		logger:  logger,
	}
}

// # Schools

// ListSchools retrieves a page of schools matching the filter.
func (service *Service) ListSchools(ctx context.Context, filter Filter, sort pagination.Sort, page pagination.Params) ([]*School, int, error) {
	return service.schools.ListSchools(ctx, filter, sort, page.Limit, page.Skip())
}

// GetSchool returns the school or a 404 [apperr.AppError].
func (service *Service) GetSchool(ctx context.Context, id string) (*School, error) {
	school, err := service.schools.GetSchool(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "School")
	}
	return school, nil
}

/*
CreateSchool validates and persists a new school.

Description: Blank optional fields are stored as NULL. A supplied
contact_email must be a valid address.

Returns:
  - *School: The persisted entity
  - error: ValidationError or repository errors
*/
func (service *Service) CreateSchool(ctx context.Context, input CreateInput) (*School, error) {
	school := &School{
		ID:           uuid.New(),
		Name:         slug.Normalize(input.Name),
		Address:      pointer.Trimmed(input.Address),
		PhoneNumber:  pointer.Trimmed(input.PhoneNumber),
		ContactEmail: pointer.Trimmed(input.ContactEmail),
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, school.Name).MaxLen(FieldName, school.Name, maxNameLength)
	if school.Address != nil {
		validator.MaxLen(FieldAddress, *school.Address, maxAddressLength)
	}
	if school.PhoneNumber != nil {
		validator.MaxLen(FieldPhoneNumber, *school.PhoneNumber, maxPhoneLength)
	}
	if school.ContactEmail != nil {
		validator.Email(FieldContactEmail, *school.ContactEmail)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.schools.CreateSchool(ctx, school); err != nil {
		return nil, err
	}

	service.logger.Info("school_created", slog.String("school_id", school.ID), slog.String("name", school.Name))
	return school, nil
}

// UpdateSchool applies the supplied fields to an existing school.
func (service *Service) UpdateSchool(ctx context.Context, id string, input UpdateInput) (*School, error) {
	if _, err := service.GetSchool(ctx, id); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name.Set {
		input.Name.Value = slug.Normalize(input.Name.Value)
		validator.Custom(FieldName, input.Name.Null, "This field cannot be null")
		validator.Required(FieldName, input.Name.Value).MaxLen(FieldName, input.Name.Value, maxNameLength)
	}

	input.Address = patch.TrimBlank(input.Address)
	input.PhoneNumber = patch.TrimBlank(input.PhoneNumber)
	input.ContactEmail = patch.TrimBlank(input.ContactEmail)

	if input.Address.HasValue() {
		validator.MaxLen(FieldAddress, input.Address.Value, maxAddressLength)
	}
	if input.PhoneNumber.HasValue() {
		validator.MaxLen(FieldPhoneNumber, input.PhoneNumber.Value, maxPhoneLength)
	}
	if input.ContactEmail.HasValue() {
		validator.Email(FieldContactEmail, input.ContactEmail.Value)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	school, err := service.schools.UpdateSchool(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "School")
	}

	service.logger.Info("school_updated", slog.String("school_id", id))
	return school, nil
}

// DeleteSchool removes a school together with its classes.
func (service *Service) DeleteSchool(ctx context.Context, id string) error {
	if _, err := service.GetSchool(ctx, id); err != nil {
		return err
	}

	if err := service.schools.DeleteSchool(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "School")
	}

	service.logger.Warn("school_deleted", slog.String("school_id", id))
	return nil
}

// ListSchoolClasses lists the classes of one school, failing when it does not exist.
func (service *Service) ListSchoolClasses(ctx context.Context, schoolID string, filter ClassFilter, sort pagination.Sort, page pagination.Params) ([]*Class, int, error) {
	if _, err := service.GetSchool(ctx, schoolID); err != nil {
		return nil, 0, err
	}

	filter.SchoolID = schoolID
	return service.ListClasses(ctx, filter, sort, page)
}

// # Classes

// ListClasses retrieves a page of classes with their school attached.
func (service *Service) ListClasses(ctx context.Context, filter ClassFilter, sort pagination.Sort, page pagination.Params) ([]*Class, int, error) {
	classes, total, err := service.classes.ListClasses(ctx, filter, sort, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, err
	}

	if err := service.attachSchools(ctx, classes...); err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

// GetClass returns the class with its school attached.
func (service *Service) GetClass(ctx context.Context, id string) (*Class, error) {
	class, err := service.classes.GetClass(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Class")
	}

	if err := service.attachSchools(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

/*
CreateClass validates and persists a new class.

Returns:
  - *Class: The persisted entity with its school attached
  - error: ValidationError, NotFound for an unknown school, or repository errors
*/
func (service *Service) CreateClass(ctx context.Context, input CreateClassInput) (*Class, error) {
	class := &Class{
		ID:         uuid.New(),
		Name:       slug.Normalize(input.Name),
		GradeLevel: input.GradeLevel,
		SchoolID:   strings.TrimSpace(input.SchoolID),
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, class.Name).MaxLen(FieldName, class.Name, maxNameLength)
	validator.Range(FieldGradeLevel, class.GradeLevel, minGradeLevel, maxGradeLevel)
	validator.Required(FieldSchoolID, class.SchoolID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.GetSchool(ctx, class.SchoolID); err != nil {
		return nil, err
	}

	if err := service.classes.CreateClass(ctx, class); err != nil {
		return nil, err
	}

	if err := service.attachSchools(ctx, class); err != nil {
		return nil, err
	}

	service.logger.Info("class_created", slog.String("class_id", class.ID), slog.String("school_id", class.SchoolID))
	return class, nil
}

// UpdateClass applies the supplied fields to an existing class.
func (service *Service) UpdateClass(ctx context.Context, id string, input UpdateClassInput) (*Class, error) {
	if _, err := service.classes.GetClass(ctx, id); err != nil {
		return nil, dberr.NotFoundAs(err, "Class")
	}

	validator := &validate.Validator{}
	if input.Name.Set {
		input.Name.Value = slug.Normalize(input.Name.Value)
		validator.Custom(FieldName, input.Name.Null, "This field cannot be null")
		validator.Required(FieldName, input.Name.Value).MaxLen(FieldName, input.Name.Value, maxNameLength)
	}
	if input.GradeLevel.Set {
		validator.Custom(FieldGradeLevel, input.GradeLevel.Null, "This field cannot be null")
		validator.Range(FieldGradeLevel, input.GradeLevel.Value, minGradeLevel, maxGradeLevel)
	}
	if input.SchoolID.Set {
		input.SchoolID.Value = strings.TrimSpace(input.SchoolID.Value)
		validator.Custom(FieldSchoolID, input.SchoolID.Null, "This field cannot be null")
		validator.Required(FieldSchoolID, input.SchoolID.Value)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.SchoolID.HasValue() {
		if _, err := service.GetSchool(ctx, input.SchoolID.Value); err != nil {
			return nil, err
		}
	}

	class, err := service.classes.UpdateClass(ctx, id, input)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Class")
	}

	if err := service.attachSchools(ctx, class); err != nil {
		return nil, err
	}

	service.logger.Info("class_updated", slog.String("class_id", id))
	return class, nil
}

// DeleteClass removes a class.
func (service *Service) DeleteClass(ctx context.Context, id string) error {
	if _, err := service.classes.GetClass(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Class")
	}

	if err := service.classes.DeleteClass(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Class")
	}

	service.logger.Warn("class_deleted", slog.String("class_id", id))
	return nil
}

// # Enrichment

func (service *Service) attachSchools(ctx context.Context, classes ...*Class) error {
	return lookup.Attach(ctx, classes,
		func(c *Class) *string { return &c.SchoolID },
		service.schools.SchoolRefs,
		func(c *Class, ref *lookup.Ref) { c.School = ref },
	)
}
