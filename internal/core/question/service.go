// Copyright (c) 2026 FutureKey. All rights reserved.

package question

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/validate"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/slice"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/uuid"
)

// # Service Layer

// Service orchestrates the question bank.
type Service struct {
	questions Repository
	logger    *slog.Logger
}

// NewService constructs a new [Service].
func NewService(questions Repository, logger *slog.Logger) *Service {
	return &Service{questions: questions, logger: logger}
}

/*
ListQuestions retrieves a page of questions with options and references attached.

Parameters:
  - ctx: context.Context
  - filter: Filter
  - sort: pagination.Sort (Whitelisted column and direction)
  - page: pagination.Params

Returns:
  - []*Question: The requested page, enriched
  - int: Total count matching the filter
  - error: Repository errors
*/
func (service *Service) ListQuestions(ctx context.Context, filter Filter, sort pagination.Sort, page pagination.Params) ([]*Question, int, error) {
	questions, total, err := service.questions.ListQuestions(ctx, filter, sort, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, err
	}

	if err := service.enrich(ctx, questions...); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// GetQuestion returns the enriched question or a 404 [apperr.AppError].
func (service *Service) GetQuestion(ctx context.Context, id string) (*Question, error) {
	question, err := service.questions.GetQuestion(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Question")
	}

	if err := service.enrich(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

/*
CreateQuestion validates and persists a question together with its options.

Description: Options without an order_index take their array position and
are stored in ascending order_index. Category, criteria and creator must
exist when given.

Returns:
  - *Question: The enriched entity
  - error: ValidationError, NotFound, or repository errors
*/
func (service *Service) CreateQuestion(ctx context.Context, input CreateInput) (*Question, error) {
	question := &Question{
		ID:               uuid.New(),
		Content:          strings.TrimSpace(input.Content),
		QuestionType:     upper(input.QuestionType),
		DifficultyLevel:  upper(input.DifficultyLevel),
		CategoryID:       pointer.Trimmed(input.CategoryID),
		CareerCriteriaID: pointer.Trimmed(input.CareerCriteriaID),
		Points:           defaultPoints,
		Explanation:      pointer.Trimmed(input.Explanation),
		Tags:             cleanTags(input.Tags),
		Metadata:         input.Metadata,
		IsActive:         input.IsActive == nil || *input.IsActive,
		CreatedBy:        pointer.Trimmed(input.CreatedBy),
	}
	if question.DifficultyLevel == "" {
		question.DifficultyLevel = DifficultyMedium
	}
	if input.Points != nil {
		question.Points = *input.Points
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, question.Content).MaxLen(FieldContent, question.Content, maxContentLength)
	validator.Required(FieldQuestionType, question.QuestionType).OneOf(FieldQuestionType, question.QuestionType, questionTypes...)
	validator.OneOf(FieldDifficultyLevel, question.DifficultyLevel, difficultyLevels...)
	validator.Range(FieldPoints, question.Points, 0, maxPoints)

	question.Options = buildOptions(validator, question.ID, input.Options)
	checkOptions(validator, question.QuestionType, question.Options)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureReferences(ctx, question.CategoryID, question.CareerCriteriaID, question.CreatedBy); err != nil {
		return nil, err
	}

	if err := service.questions.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	if err := service.enrich(ctx, question); err != nil {
		return nil, err
	}

	service.logger.Info("question_created",
		slog.String("question_id", question.ID),
		slog.String("question_type", question.QuestionType),
		slog.Int("options", len(question.Options)),
	)
	return question, nil
}

/*
UpdateQuestion applies the supplied fields to an existing question.

Description: A supplied options array (including [] or null) replaces every
option in the same transaction as the field update. When only the type
changes, the current options are checked against the new type.

Returns:
  - *Question: The enriched entity
  - error: NotFound, ValidationError, or repository errors
*/
func (service *Service) UpdateQuestion(ctx context.Context, id string, input UpdateInput) (*Question, error) {
	current, err := service.questions.GetQuestion(ctx, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Question")
	}

	validator := &validate.Validator{}
	if input.Content.Set {
		input.Content.Value = strings.TrimSpace(input.Content.Value)
		validator.Custom(FieldContent, input.Content.Null, "This field cannot be null")
		validator.Required(FieldContent, input.Content.Value).MaxLen(FieldContent, input.Content.Value, maxContentLength)
	}
	if input.QuestionType.Set {
		input.QuestionType.Value = upper(input.QuestionType.Value)
		validator.Custom(FieldQuestionType, input.QuestionType.Null, "This field cannot be null")
		validator.OneOf(FieldQuestionType, input.QuestionType.Value, questionTypes...)
	}
	if input.DifficultyLevel.Set {
		input.DifficultyLevel.Value = upper(input.DifficultyLevel.Value)
		validator.Custom(FieldDifficultyLevel, input.DifficultyLevel.Null, "This field cannot be null")
		validator.OneOf(FieldDifficultyLevel, input.DifficultyLevel.Value, difficultyLevels...)
	}
	if input.Points.Set {
		validator.Custom(FieldPoints, input.Points.Null, "This field cannot be null")
		validator.Range(FieldPoints, input.Points.Value, 0, maxPoints)
	}
	validator.Custom(FieldIsActive, input.IsActive.Set && input.IsActive.Null, "This field cannot be null")

	input.CategoryID = patch.TrimBlank(input.CategoryID)
	input.CareerCriteriaID = patch.TrimBlank(input.CareerCriteriaID)
	input.CreatedBy = patch.TrimBlank(input.CreatedBy)
	input.Explanation = patch.TrimBlank(input.Explanation)
	if input.Tags.Set {
		input.Tags.Value = cleanTags(input.Tags.Value)
	}

	questionType := current.QuestionType
	if input.QuestionType.HasValue() {
		questionType = input.QuestionType.Value
	}

	var options []Option
	switch {
	case input.Options.Set:
		options = buildOptions(validator, id, input.Options.Value)
		checkOptions(validator, questionType, options)
	case questionType != current.QuestionType:
		existing, err := service.questions.OptionsByQuestion(ctx, []string{id})
		if err != nil {
			return nil, err
		}
		checkOptions(validator, questionType, existing[id])
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureReferences(ctx,
		supplied(input.CategoryID), supplied(input.CareerCriteriaID), supplied(input.CreatedBy),
	); err != nil {
		return nil, err
	}

	question, err := service.questions.UpdateQuestion(ctx, id, input, options)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Question")
	}

	if err := service.enrich(ctx, question); err != nil {
		return nil, err
	}

	service.logger.Info("question_updated", slog.String("question_id", id), slog.Bool("options_replaced", options != nil))
	return question, nil
}

/*
DeleteQuestion removes a question and its options.

Returns:
  - error: NotFound, [ErrInUse] while an exam references it, or repository errors
*/
func (service *Service) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := service.questions.GetQuestion(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Question")
	}

	inUse, err := service.questions.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}

	if err := service.questions.DeleteQuestion(ctx, id); err != nil {
		return dberr.NotFoundAs(err, "Question")
	}

	service.logger.Warn("question_deleted", slog.String("question_id", id))
	return nil
}

// # Options

// buildOptions normalizes option inputs into rows sorted by order_index.
// The result is never nil.
func buildOptions(validator *validate.Validator, questionID string, inputs []OptionInput) []Option {
	options := make([]Option, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	positions := make(map[int]struct{}, len(inputs))

	for i, input := range inputs {
		field := fmt.Sprintf("%s[%d]", FieldOptions, i)
		option := Option{
			ID:         uuid.New(),
			QuestionID: questionID,
			OptionKey:  strings.TrimSpace(input.OptionKey),
			OptionText: strings.TrimSpace(input.OptionText),
			IsCorrect:  input.IsCorrect,
			OrderIndex: i,
		}
		if input.OrderIndex != nil {
			option.OrderIndex = *input.OrderIndex
		}

		validator.Required(field+".option_key", option.OptionKey).MaxLen(field+".option_key", option.OptionKey, maxOptionKeyLen)
		validator.Required(field+".option_text", option.OptionText)
		validator.Custom(field+".order_index", option.OrderIndex < 0, "Must be zero or greater")

		if _, dup := seen[option.OptionKey]; dup && option.OptionKey != "" {
			validator.Custom(field+".option_key", true, "Duplicate option key")
		}
		seen[option.OptionKey] = struct{}{}

		if _, dup := positions[option.OrderIndex]; dup {
			validator.Custom(field+".order_index", true, "Duplicate order index")
		}
		positions[option.OrderIndex] = struct{}{}

		options = append(options, option)
	}

	slices.SortStableFunc(options, func(a, b Option) int { return cmp.Compare(a.OrderIndex, b.OrderIndex) })
	return options
}

// checkOptions enforces the option shape each question type requires.
func checkOptions(validator *validate.Validator, questionType string, options []Option) {
	correct := 0
	for _, o := range options {
		if o.IsCorrect {
			correct++
		}
	}

	switch questionType {
	case TypeSingleChoice, TypeMultipleChoice:
		validator.Custom(FieldOptions, len(options) < 2, "Choice questions need at least two options")
		validator.Custom(FieldOptions, correct == 0, "At least one option must be correct")
		validator.Custom(FieldOptions, questionType == TypeSingleChoice && correct > 1, "Exactly one option must be correct")
	case TypeTrueFalse:
		validator.Custom(FieldOptions, len(options) != 2, "True/false questions need exactly two options")
		validator.Custom(FieldOptions, correct != 1, "Exactly one option must be correct")
	}
}

// # References

// ensureReferences checks that every non-nil reference exists.
func (service *Service) ensureReferences(ctx context.Context, categoryID, criteriaID, createdBy *string) error {
	checks := []struct {
		id       *string
		load     lookup.Loader[string, lookup.Ref]
		resource string
		field    string
	}{
		{categoryID, service.questions.CategoryRefs, "Question category", FieldCategoryID},
		{criteriaID, service.questions.CriteriaRefs, "Career criteria", FieldCareerCriteriaID},
		{createdBy, service.questions.UserRefs, "User", FieldCreatedBy},
	}

	for _, check := range checks {
		if check.id == nil {
			continue
		}

		refs, err := check.load(ctx, []string{*check.id})
		if err != nil {
			return err
		}
		if _, ok := refs[*check.id]; !ok {
			notFound := apperr.NotFound(check.resource)
			notFound.Details = []apperr.FieldError{{Field: check.field, Message: "Unknown id: " + *check.id}}
			return notFound
		}
	}
	return nil
}

// # Enrichment

// enrich attaches options and references, one query per relation.
func (service *Service) enrich(ctx context.Context, questions ...*Question) error {
	if err := lookup.Attach(ctx, questions,
		func(q *Question) *string { return &q.ID },
		service.questions.OptionsByQuestion,
		func(q *Question, options *[]Option) {
			q.Options = []Option{}
			if options != nil {
				q.Options = *options
			}
		},
	); err != nil {
		return err
	}

	if err := lookup.Attach(ctx, questions,
		func(q *Question) *string { return q.CategoryID },
		service.questions.CategoryRefs,
		func(q *Question, ref *lookup.Ref) { q.Category = ref },
	); err != nil {
		return err
	}

	if err := lookup.Attach(ctx, questions,
		func(q *Question) *string { return q.CareerCriteriaID },
		service.questions.CriteriaRefs,
		func(q *Question, ref *lookup.Ref) { q.CareerCriteria = ref },
	); err != nil {
		return err
	}

	return lookup.Attach(ctx, questions,
		func(q *Question) *string { return q.CreatedBy },
		service.questions.UserRefs,
		func(q *Question, ref *lookup.Ref) { q.Creator = ref },
	)
}

// # Helpers

func upper(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// supplied returns the value only when the field carries one.
func supplied(field patch.Field[string]) *string {
	if !field.HasValue() {
		return nil
	}
	return &field.Value
}

// cleanTags trims, drops blanks and de-duplicates tags. The result is never nil.
func cleanTags(tags []string) []string {
	return slice.Unique(slice.Map(tags, strings.TrimSpace))
}
