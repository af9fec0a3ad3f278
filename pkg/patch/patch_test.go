// Copyright (c) 2026 FutureKey. All rights reserved.

package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyhoang189/futurekey-be-sub002/pkg/patch"
)

type body struct {
	Name       patch.Field[string] `json:"name"`
	ProvinceID patch.Field[string] `json:"province_id"`
	Points     patch.Field[int]    `json:"points"`
}

func TestField_DistinguishesAbsentNullAndValue(t *testing.T) {
	var payload body
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ward 7","province_id":null}`), &payload))

	assert.True(t, payload.Name.HasValue())
	assert.Equal(t, "Ward 7", payload.Name.Value)

	assert.True(t, payload.ProvinceID.Set)
	assert.True(t, payload.ProvinceID.Null)
	assert.Nil(t, payload.ProvinceID.Ptr())

	assert.False(t, payload.Points.Set)
}

func TestField_RejectsWrongType(t *testing.T) {
	var payload body
	assert.Error(t, json.Unmarshal([]byte(`{"points":"many"}`), &payload))
}

func TestField_Marshal(t *testing.T) {
	out, err := json.Marshal(body{Name: patch.Of("Hue"), ProvinceID: patch.Null[string]()})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"Hue","province_id":null,"points":null}`, string(out))
}

func TestTrimBlank(t *testing.T) {
	assert.Equal(t, patch.Field[string]{}, patch.TrimBlank(patch.Field[string]{}))
	assert.Equal(t, patch.Null[string](), patch.TrimBlank(patch.Null[string]()))
	assert.Equal(t, patch.Null[string](), patch.TrimBlank(patch.Of("   ")))
	assert.Equal(t, patch.Of("Hue"), patch.TrimBlank(patch.Of(" Hue ")))
}
