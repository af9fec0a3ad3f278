package question_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/question"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// memoryRepository is an in-memory stand-in for [question.PostgresRepository].
type memoryRepository struct {
	questions map[string]*question.Question
	options   map[string][]question.Option
	examRefs  map[string]bool

	categories map[string]string
	criteria   map[string]string
	users      map[string]string

	optionCalls int
	refCalls    int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		questions:  make(map[string]*question.Question),
		options:    make(map[string][]question.Option),
		examRefs:   make(map[string]bool),
		categories: map[string]string{"cat-1": "Logic"},
		criteria:   map[string]string{"crit-1": "Analytical thinking"},
		users:      map[string]string{"user-1": "Tran Thi B"},
	}
}

func (repository *memoryRepository) ListQuestions(_ context.Context, filter question.Filter, _ pagination.Sort, limit, skip int) ([]*question.Question, int, error) {
	var matched []*question.Question
	for _, q := range repository.questions {
		switch {
		case !strings.Contains(strings.ToLower(q.Content), strings.ToLower(filter.Search)):
			continue
		case filter.QuestionType != "" && q.QuestionType != filter.QuestionType:
			continue
		case filter.CategoryID != "" && (q.CategoryID == nil || *q.CategoryID != filter.CategoryID):
			continue
		case filter.Tag != "" && !slices.Contains(q.Tags, filter.Tag):
			continue
		case filter.IsActive != nil && q.IsActive != *filter.IsActive:
			continue
		}
		copied := *q
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Content < matched[j].Content })

	if skip >= len(matched) {
		return []*question.Question{}, len(matched), nil
	}
	return matched[skip:min(len(matched), skip+limit)], len(matched), nil
}

func (repository *memoryRepository) GetQuestion(_ context.Context, id string) (*question.Question, error) {
	q, ok := repository.questions[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *q
	copied.Options = nil
	return &copied, nil
}

func (repository *memoryRepository) CreateQuestion(_ context.Context, q *question.Question) error {
	q.CreatedAt, q.UpdatedAt = time.Now(), time.Now()
	copied := *q
	repository.questions[q.ID] = &copied
	repository.options[q.ID] = slices.Clone(q.Options)
	return nil
}

func (repository *memoryRepository) UpdateQuestion(ctx context.Context, id string, input question.UpdateInput, options []question.Option) (*question.Question, error) {
	q, ok := repository.questions[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Content.HasValue() {
		q.Content = input.Content.Value
	}
	if input.QuestionType.HasValue() {
		q.QuestionType = input.QuestionType.Value
	}
	if input.DifficultyLevel.HasValue() {
		q.DifficultyLevel = input.DifficultyLevel.Value
	}
	if input.CategoryID.Set {
		q.CategoryID = input.CategoryID.Ptr()
	}
	if input.Points.HasValue() {
		q.Points = input.Points.Value
	}
	if input.Tags.Set {
		q.Tags = input.Tags.Value
	}
	if input.IsActive.HasValue() {
		q.IsActive = input.IsActive.Value
	}
	if options != nil {
		repository.options[id] = slices.Clone(options)
	}
	return repository.GetQuestion(ctx, id)
}

func (repository *memoryRepository) DeleteQuestion(_ context.Context, id string) error {
	if _, ok := repository.questions[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.questions, id)
	delete(repository.options, id)
	return nil
}

func (repository *memoryRepository) InUse(_ context.Context, id string) (bool, error) {
	return repository.examRefs[id], nil
}

func (repository *memoryRepository) OptionsByQuestion(_ context.Context, ids []string) (map[string][]question.Option, error) {
	repository.optionCalls++

	result := make(map[string][]question.Option)
	for _, id := range ids {
		if options, ok := repository.options[id]; ok && len(options) > 0 {
			result[id] = slices.Clone(options)
		}
	}
	return result, nil
}

func refs(names map[string]string, ids []string) map[string]lookup.Ref {
	result := make(map[string]lookup.Ref)
	for _, id := range ids {
		if name, ok := names[id]; ok {
			result[id] = lookup.Ref{ID: id, Name: name}
		}
	}
	return result
}

func (repository *memoryRepository) CategoryRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls++
	return refs(repository.categories, ids), nil
}

func (repository *memoryRepository) CriteriaRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls++
	return refs(repository.criteria, ids), nil
}

func (repository *memoryRepository) UserRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls++
	return refs(repository.users, ids), nil
}
