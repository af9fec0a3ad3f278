// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package school manages schools and the classes they run.

# Invariants

  - Class.school_id is required and references an existing school.
  - Deleting a school deletes its classes.
  - grade_level lies within [1, 12].
*/
package school

import (
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

// School is an institution that licenses careers for its students.
type School struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address"`
	PhoneNumber  *string   `json:"phone_number"`
	ContactEmail *string   `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Class is a group of students within one school.
type Class struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	GradeLevel int         `json:"grade_level"`
	SchoolID   string      `json:"school_id"`
	School     *lookup.Ref `json:"school"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Filter holds the parameters for a paginated school search.
type Filter struct {
	Search string // ILIKE against name, address and contact_email
}

// ClassFilter holds the parameters for a paginated class search.
type ClassFilter struct {
	Search     string
	SchoolID   string
	GradeLevel int // Ignored when zero
}

// CreateInput is the payload for POST /schools.
type CreateInput struct {
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	PhoneNumber  *string `json:"phone_number"`
	ContactEmail *string `json:"contact_email"`
}

// UpdateInput is the payload for PUT /schools/{id}.
type UpdateInput struct {
	Name         patch.Field[string] `json:"name"`
	Address      patch.Field[string] `json:"address"`
	PhoneNumber  patch.Field[string] `json:"phone_number"`
	ContactEmail patch.Field[string] `json:"contact_email"`
}

// CreateClassInput is the payload for POST /classes.
type CreateClassInput struct {
	Name       string `json:"name"`
	GradeLevel int    `json:"grade_level"`
	SchoolID   string `json:"school_id"`
}

// UpdateClassInput is the payload for PUT /classes/{id}.
type UpdateClassInput struct {
	Name       patch.Field[string] `json:"name"`
	GradeLevel patch.Field[int]    `json:"grade_level"`
	SchoolID   patch.Field[string] `json:"school_id"`
}

// Global field names for validation
const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldPhoneNumber  = "phone_number"
	FieldContactEmail = "contact_email"
	FieldGradeLevel   = "grade_level"
	FieldSchoolID     = "school_id"
)

const (
	maxNameLength    = 255
	maxAddressLength = 500
	maxPhoneLength   = 32
	minGradeLevel    = 1
	maxGradeLevel    = 12
)

// Sortable columns exposed through ?sort_by=.
var (
	schoolSortFields = map[string]string{"name": "name", "created_at": "created_at"}
	classSortFields  = map[string]string{"name": "name", "grade_level": "grade_level", "created_at": "created_at"}
)
