// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package career manages the career catalogue and its categories.

Careers link to categories through a junction table. Responses carry each
career's categories, its criteria count, and its cover image, all resolved in
one batched query per relation.

# Routing Strategy

  - Admin (v1): full CRUD on /career-categories and /careers.
  - Public (v2): read-only category list and active-career search.
*/
package career

import (
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

// Category groups careers for browsing ("Engineering", "Healthcare").
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Career is a career schools can license for their students.
type Career struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Enrichment
	Categories    []lookup.Ref `json:"categories"`
	CriteriaCount int          `json:"criteria_count"`
	Image         *Image       `json:"image"`
}

// Image is the latest file stored for a career.
type Image struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
}

// CategoryFilter holds the parameters for a paginated category search.
type CategoryFilter struct {
	Search string // ILIKE against name and description
}

// Filter holds the parameters for a paginated career search.
type Filter struct {
	Search      string   // ILIKE against code, name and description
	IsActive    *bool    // Equality filter when not nil
	CategoryIDs []string // Careers linked to any of these categories
}

// CreateCategoryInput is the payload for POST /career-categories.
type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateCategoryInput is the payload for PUT /career-categories/{id}.
type UpdateCategoryInput struct {
	Name        patch.Field[string] `json:"name"`
	Description patch.Field[string] `json:"description"`
}

// CreateInput is the payload for POST /careers.
type CreateInput struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"is_active"`
	CategoryIDs []string `json:"category_ids"`
}

// UpdateInput is the payload for PUT /careers/{id}.
//
// A supplied category_ids array replaces every link; an absent one keeps them.
type UpdateInput struct {
	Code        patch.Field[string]   `json:"code"`
	Name        patch.Field[string]   `json:"name"`
	Description patch.Field[string]   `json:"description"`
	IsActive    patch.Field[bool]     `json:"is_active"`
	CategoryIDs patch.Field[[]string] `json:"category_ids"`
}

// Global field names for validation
const (
	FieldCode        = "code"
	FieldName        = "name"
	FieldDescription = "description"
	FieldIsActive    = "is_active"
	FieldCategoryIDs = "category_ids"
)

const (
	maxNameLength = 255
	maxCodeLength = 64
)

// Sortable columns exposed through ?sort_by=.
var (
	categorySortFields = map[string]string{"name": "name", "created_at": "created_at"}
	careerSortFields   = map[string]string{"name": "name", "code": "code", "created_at": "created_at"}
)
