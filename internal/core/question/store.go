package question

import (
	"context"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// Repository persists questions and their options.
type Repository interface {
	ListQuestions(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*Question, int, error)
	GetQuestion(ctx context.Context, id string) (*Question, error)

	// CreateQuestion inserts the question and question.Options in one transaction.
	CreateQuestion(ctx context.Context, question *Question) error

	// UpdateQuestion applies the supplied fields and, when options is not nil,
	// replaces every option, in one transaction.
	UpdateQuestion(ctx context.Context, id string, input UpdateInput, options []Option) (*Question, error)

	// DeleteQuestion removes the options and the question in one transaction.
	DeleteQuestion(ctx context.Context, id string) error

	// InUse reports whether any exam references the question.
	InUse(ctx context.Context, id string) (bool, error)

	// # Enrichment (one query per relation)

	OptionsByQuestion(ctx context.Context, questionIDs []string) (map[string][]Option, error)
	CategoryRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
	CriteriaRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
	UserRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
}
