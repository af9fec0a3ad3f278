// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package location manages the administrative geography: provinces and the
communes that belong to them.

# Invariants

  - Province names are unique by convention. Only the service checks it.
  - Commune names are unique across all communes, backed by a store constraint.
  - Commune.province_id is nullable and, when present, references a province.
*/
package location

import (
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

// Province is a first-level administrative unit.
type Province struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Commune is a second-level administrative unit.
type Commune struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	ProvinceID *string     `json:"province_id"`
	Province   *lookup.Ref `json:"province"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ProvinceFilter holds the parameters for a paginated province search.
type ProvinceFilter struct {
	Search string // ILIKE against name
}

// CommuneFilter holds the parameters for a paginated commune search.
type CommuneFilter struct {
	Search     string // ILIKE against name
	Name       string // ILIKE against name, combined with Search
	ProvinceID string // Equality filter when not empty
}

// CreateProvinceInput is the payload for POST /provinces.
type CreateProvinceInput struct {
	Name string `json:"name"`
}

// UpdateProvinceInput is the payload for PUT /provinces/{id}.
type UpdateProvinceInput struct {
	Name patch.Field[string] `json:"name"`
}

// CreateCommuneInput is the payload for POST /communes.
type CreateCommuneInput struct {
	Name       string  `json:"name"`
	ProvinceID *string `json:"province_id"`
}

// UpdateCommuneInput is the payload for PUT /communes/{id}.
type UpdateCommuneInput struct {
	Name       patch.Field[string] `json:"name"`
	ProvinceID patch.Field[string] `json:"province_id"`
}

// Global field names for validation
const (
	FieldName       = "name"
	FieldProvinceID = "province_id"
)

// Sortable columns exposed through ?sort_by=.
var (
	provinceSortFields = map[string]string{"name": "name", "created_at": "created_at"}
	communeSortFields  = map[string]string{"name": "name", "created_at": "created_at"}
)
