/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/propconfig/keys"
)

func TestSchema(t *testing.T) {
	s := Schema()
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, keys.Count(), s.Properties.Len())

	prop, ok := s.Properties.Get("MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB")
	require.True(t, ok)
	assert.Equal(t, "number", prop.Type)
	assert.Equal(t, 1.0, prop.Default)

	prop, ok = s.Properties.Get("ALTERNATIVE_REFPROP_PATH")
	require.True(t, ok)
	assert.Equal(t, "string", prop.Type)
	assert.NotEmpty(t, prop.Description)

	// Properties keep catalog order.
	first := s.Properties.Oldest()
	require.NotNil(t, first)
	assert.Equal(t, "NORMALIZE_GAS_CONSTANTS", first.Key)
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, false, doc["additionalProperties"])
	assert.Equal(t, "object", doc["type"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, keys.Count())

	gas, ok := props["NORMALIZE_GAS_CONSTANTS"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boolean", gas["type"])
	assert.Equal(t, true, gas["default"])
}
