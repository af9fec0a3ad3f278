// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package question manages the assessment question bank.

A question owns an ordered list of options. Options are always written
together with their question in one transaction, and are replaced as a whole
when an update supplies them.

# Invariants

  - Options are returned in ascending order_index.
  - option_key is unique within a question.
  - Choice questions carry at least two options and at least one correct one;
    SINGLE_CHOICE and TRUE_FALSE carry exactly one.
  - A question referenced by an exam cannot be deleted.
*/
package question

import (
	"encoding/json"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

// Question types.
const (
	TypeSingleChoice   = "SINGLE_CHOICE"
	TypeMultipleChoice = "MULTIPLE_CHOICE"
	TypeTrueFalse      = "TRUE_FALSE"
	TypeShortAnswer    = "SHORT_ANSWER"
)

// Difficulty levels.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

var (
	questionTypes    = []string{TypeSingleChoice, TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer}
	difficultyLevels = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
)

// ErrInUse is returned when deleting a question that an exam still references.
var ErrInUse = apperr.Conflict("Question is in use")

// Question is a single item of the question bank.
type Question struct {
	ID               string          `json:"id"`
	Content          string          `json:"content"`
	QuestionType     string          `json:"question_type"`
	DifficultyLevel  string          `json:"difficulty_level"`
	CategoryID       *string         `json:"category_id"`
	CareerCriteriaID *string         `json:"career_criteria_id"`
	Points           int             `json:"points"`
	Explanation      *string         `json:"explanation"`
	Tags             []string        `json:"tags"`
	Metadata         json.RawMessage `json:"metadata"`
	IsActive         bool            `json:"is_active"`
	CreatedBy        *string         `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Enrichment
	Options        []Option    `json:"options"`
	Category       *lookup.Ref `json:"category"`
	CareerCriteria *lookup.Ref `json:"career_criteria"`
	Creator        *lookup.Ref `json:"creator"`
}

// Option is one answer choice of a question.
type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	OptionKey  string `json:"option_key"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

// Filter holds the parameters for a paginated question search.
type Filter struct {
	Search           string // ILIKE against content and explanation
	CategoryID       string
	CareerCriteriaID string
	QuestionType     string
	DifficultyLevel  string
	Tag              string // Questions carrying this tag
	IsActive         *bool
}

// OptionInput describes one option in a create or update payload.
//
// A nil OrderIndex takes the option's position in the array.
type OptionInput struct {
	OptionKey  string `json:"option_key"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex *int   `json:"order_index"`
}

// CreateInput is the payload for POST /questions.
type CreateInput struct {
	Content          string          `json:"content"`
	QuestionType     string          `json:"question_type"`
	DifficultyLevel  string          `json:"difficulty_level"`
	CategoryID       *string         `json:"category_id"`
	CareerCriteriaID *string         `json:"career_criteria_id"`
	Points           *int            `json:"points"`
	Explanation      *string         `json:"explanation"`
	Tags             []string        `json:"tags"`
	Metadata         json.RawMessage `json:"metadata"`
	IsActive         *bool           `json:"is_active"`
	CreatedBy        *string         `json:"created_by"`
	Options          []OptionInput   `json:"options"`
}

// UpdateInput is the payload for PUT /questions/{id}.
//
// A supplied options array replaces every option; an absent one keeps them.
type UpdateInput struct {
	Content          patch.Field[string]          `json:"content"`
	QuestionType     patch.Field[string]          `json:"question_type"`
	DifficultyLevel  patch.Field[string]          `json:"difficulty_level"`
	CategoryID       patch.Field[string]          `json:"category_id"`
	CareerCriteriaID patch.Field[string]          `json:"career_criteria_id"`
	Points           patch.Field[int]             `json:"points"`
	Explanation      patch.Field[string]          `json:"explanation"`
	Tags             patch.Field[[]string]        `json:"tags"`
	Metadata         patch.Field[json.RawMessage] `json:"metadata"`
	IsActive         patch.Field[bool]            `json:"is_active"`
	CreatedBy        patch.Field[string]          `json:"created_by"`
	Options          patch.Field[[]OptionInput]   `json:"options"`
}

// Global field names for validation
const (
	FieldContent          = "content"
	FieldQuestionType     = "question_type"
	FieldDifficultyLevel  = "difficulty_level"
	FieldCategoryID       = "category_id"
	FieldCareerCriteriaID = "career_criteria_id"
	FieldPoints           = "points"
	FieldIsActive         = "is_active"
	FieldCreatedBy        = "created_by"
	FieldOptions          = "options"
)

const (
	defaultPoints    = 1
	maxPoints        = 1000
	maxOptionKeyLen  = 16
	maxContentLength = 5000
)

// Sortable columns exposed through ?sort_by=.
var sortFields = map[string]string{
	"created_at":       "created_at",
	"points":           "points",
	"difficulty_level": "difficulty_level",
	"question_type":    "question_type",
}
