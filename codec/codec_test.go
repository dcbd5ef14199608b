/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/registry"
)

const defaultDocument = `{
	"NORMALIZE_GAS_CONSTANTS": true,
	"CRITICAL_WITHIN_1UK": true,
	"CRITICAL_SPLINES_ENABLED": true,
	"SAVE_RAW_TABLES": false,
	"ALTERNATIVE_TABLES_DIRECTORY": "",
	"ALTERNATIVE_REFPROP_PATH": "",
	"ALTERNATIVE_REFPROP_HMX_BNC_PATH": "",
	"REFPROP_DONT_ESTIMATE_INTERACTION_PARAMETERS": false,
	"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": 1.0,
	"DONT_CHECK_PROPERTY_LIMITS": false,
	"HENRYS_LAW_TO_GENERATE_VLE_GUESSES": false,
	"PHASE_ENVELOPE_STARTING_PRESSURE_PA": 100.0
}`

func TestEncode_Defaults(t *testing.T) {
	doc, err := Encode(registry.New())
	require.NoError(t, err)

	assert.Len(t, doc, keys.Count())
	assert.Equal(t, true, doc["NORMALIZE_GAS_CONSTANTS"])
	assert.Equal(t, 1.0, doc["MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB"])
	assert.Equal(t, "", doc["ALTERNATIVE_TABLES_DIRECTORY"])
}

func TestEncodeString(t *testing.T) {
	text, err := EncodeString(registry.New())
	require.NoError(t, err)

	assert.JSONEq(t, defaultDocument, text)
	assert.Contains(t, text, `"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB":1.0`)
	assert.Contains(t, text, `"PHASE_ENVELOPE_STARTING_PRESSURE_PA":100.0`)
	assert.True(t, strings.HasPrefix(text, `{"NORMALIZE_GAS_CONSTANTS":true`), text)

	// Members follow catalog order.
	last := -1
	for _, k := range keys.All() {
		idx := strings.Index(text, `"`+k.String()+`"`)
		require.GreaterOrEqual(t, idx, 0, k.String())
		assert.Greater(t, idx, last, "%s out of order", k)
		last = idx
	}
}

func TestDecodeString_Idempotent(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.SetDouble(keys.MaximumTableDirectorySizeInGB, 12.75))
	require.NoError(t, r.SetString(keys.AlternativeRefpropPath, `C:\REFPROP "x"`))
	require.NoError(t, r.SetBool(keys.SaveRawTables, true))

	before, err := EncodeString(r)
	require.NoError(t, err)

	require.NoError(t, DecodeString(r, before))

	after, err := EncodeString(r)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	fresh := registry.New()
	require.NoError(t, DecodeString(fresh, before))
	copied, err := EncodeString(fresh)
	require.NoError(t, err)
	assert.Equal(t, before, copied)
}

func TestDecodeString_PartialUpdate(t *testing.T) {
	r := registry.New()
	require.NoError(t, DecodeString(r, `{"NORMALIZE_GAS_CONSTANTS": false}`))

	b, err := r.GetBool(keys.NormalizeGasConstants)
	require.NoError(t, err)
	assert.False(t, b)

	d, err := r.GetDouble(keys.MaximumTableDirectorySizeInGB)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	require.NoError(t, DecodeString(r, `{}`))
	b, err = r.GetBool(keys.NormalizeGasConstants)
	require.NoError(t, err)
	assert.False(t, b)
}

func TestDecodeString_TypeMismatch(t *testing.T) {
	r := registry.New()

	err := DecodeString(r, `{"NORMALIZE_GAS_CONSTANTS": "yes"}`)
	assert.True(t, errors.IsTypeMismatch(err))

	b, err := r.GetBool(keys.NormalizeGasConstants)
	require.NoError(t, err)
	assert.True(t, b)

	tests := []struct {
		name string
		text string
	}{
		{"bool from number", `{"SAVE_RAW_TABLES": 1}`},
		{"bool from null", `{"SAVE_RAW_TABLES": null}`},
		{"double from string", `{"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": "2.0"}`},
		{"double from bool", `{"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": true}`},
		{"string from number", `{"ALTERNATIVE_TABLES_DIRECTORY": 5}`},
		{"string from array", `{"ALTERNATIVE_TABLES_DIRECTORY": ["a"]}`},
		{"string from object", `{"ALTERNATIVE_TABLES_DIRECTORY": {"a": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registry.New()
			err := DecodeString(r, tt.text)
			assert.True(t, errors.IsTypeMismatch(err), "got %v", err)

			text, err := EncodeString(r)
			require.NoError(t, err)
			assert.JSONEq(t, defaultDocument, text)
		})
	}
}

func TestDecodeString_NumberOutOfRange(t *testing.T) {
	r := registry.New()

	err := DecodeString(r, `{"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": 1e400}`)
	var mismatch *errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "number", mismatch.Actual)

	d, err := r.GetDouble(keys.MaximumTableDirectorySizeInGB)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}

func TestDecodeString_InvalidUTF8(t *testing.T) {
	r := registry.New()

	err := DecodeBytes(r, []byte("{\"SAVE_RAW_TABLES\": true, \"ALTERNATIVE_TABLES_DIRECTORY\": \"a\xffb\"}"))
	assert.True(t, errors.IsParseError(err), "got %v", err)

	// Nothing is applied when the text is rejected.
	saved, err := r.GetBool(keys.SaveRawTables)
	require.NoError(t, err)
	assert.False(t, saved)

	it, err := r.Item(keys.AlternativeTablesDirectory)
	require.NoError(t, err)
	assert.True(t, errors.IsParseError(DecodeItem(it, "a\xffb")))
	assert.NoError(t, DecodeItem(it, "caf\u00e9"))

	text, err := EncodeString(r)
	require.NoError(t, err)
	assert.Contains(t, text, `"ALTERNATIVE_TABLES_DIRECTORY":"café"`)
}

func TestDecodeString_DoubleAcceptsInteger(t *testing.T) {
	r := registry.New()
	require.NoError(t, DecodeString(r, `{"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": 2, "PHASE_ENVELOPE_STARTING_PRESSURE_PA": 5e2}`))

	d, err := r.GetDouble(keys.MaximumTableDirectorySizeInGB)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	p, err := r.GetDouble(keys.PhaseEnvelopeStartingPressurePa)
	require.NoError(t, err)
	assert.Equal(t, 500.0, p)

	text, err := EncodeString(r)
	require.NoError(t, err)
	assert.Contains(t, text, `"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB":2.0`)
}

func TestDecodeString_UnknownMember(t *testing.T) {
	r := registry.New()

	// Members are applied in document order and the failure does not roll
	// back the member before it.
	err := DecodeString(r, `{"SAVE_RAW_TABLES": true, "NOT_A_KEY": 1, "DONT_CHECK_PROPERTY_LIMITS": true}`)
	assert.True(t, errors.IsUnknownKey(err))

	saved, err := r.GetBool(keys.SaveRawTables)
	require.NoError(t, err)
	assert.True(t, saved)

	limits, err := r.GetBool(keys.DontCheckPropertyLimits)
	require.NoError(t, err)
	assert.False(t, limits)

	err = DecodeString(r, `{"normalize_gas_constants": false}`)
	assert.True(t, errors.IsUnknownKey(err))
}

func TestDecodeString_ParseError(t *testing.T) {
	for _, text := range []string{``, `{`, `{"SAVE_RAW_TABLES": tru}`, `[1, 2]`, `true`, `"text"`} {
		t.Run(text, func(t *testing.T) {
			r := registry.New()
			err := DecodeString(r, text)
			assert.True(t, errors.IsParseError(err), "got %v", err)
		})
	}
}

func TestDecode_Document(t *testing.T) {
	r := registry.New()
	err := Decode(r, Document{
		"PHASE_ENVELOPE_STARTING_PRESSURE_PA": 250,
		"ALTERNATIVE_TABLES_DIRECTORY":        "/var/tables",
		"CRITICAL_SPLINES_ENABLED":            false,
		"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB":  json.Number("0.5"),
	})
	require.NoError(t, err)

	p, err := r.GetDouble(keys.PhaseEnvelopeStartingPressurePa)
	require.NoError(t, err)
	assert.Equal(t, 250.0, p)

	m, err := r.GetDouble(keys.MaximumTableDirectorySizeInGB)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m)

	dir, err := r.GetString(keys.AlternativeTablesDirectory)
	require.NoError(t, err)
	assert.Equal(t, "/var/tables", dir)

	err = Decode(r, Document{"UNKNOWN": true})
	assert.True(t, errors.IsUnknownKey(err))

	err = Decode(r, Document{"SAVE_RAW_TABLES": "false"})
	assert.True(t, errors.IsTypeMismatch(err))
}

func TestDecode_RoundTripsEncode(t *testing.T) {
	src := registry.New()
	require.NoError(t, src.SetBool(keys.HenrysLawToGenerateVLEGuesses, true))
	require.NoError(t, src.SetDouble(keys.PhaseEnvelopeStartingPressurePa, 101325))

	doc, err := Encode(src)
	require.NoError(t, err)

	dst := registry.New()
	require.NoError(t, Decode(dst, doc))

	again, err := Encode(dst)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestItemCodec(t *testing.T) {
	t.Run("integer item", func(t *testing.T) {
		it := registry.NewItem(keys.SaveRawTables, 1)

		require.NoError(t, DecodeItem(it, json.Number("42")))
		n, err := registry.Read[int](it)
		require.NoError(t, err)
		assert.Equal(t, 42, n)

		require.NoError(t, DecodeItem(it, int64(-7)))

		assert.True(t, errors.IsTypeMismatch(DecodeItem(it, json.Number("2.0"))))
		assert.True(t, errors.IsTypeMismatch(DecodeItem(it, 3.0)))
		assert.True(t, errors.IsTypeMismatch(DecodeItem(it, "3")))

		n, err = registry.Read[int](it)
		require.NoError(t, err)
		assert.Equal(t, -7, n)

		doc := Document{}
		require.NoError(t, EncodeItem(doc, it))
		assert.Equal(t, -7, doc["SAVE_RAW_TABLES"])

		raw, err := Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t, `{"SAVE_RAW_TABLES":-7}`, string(raw))
	})

	t.Run("undefined item", func(t *testing.T) {
		var it registry.Item
		assert.True(t, errors.IsInvalidState(EncodeItem(Document{}, &it)))
		assert.True(t, errors.IsInvalidState(DecodeItem(&it, true)))

		r := registry.New()
		require.True(t, r.AddItem(registry.NewItemFromValue(keys.Key(keys.Count()), nil)))
		_, err := Encode(r)
		assert.True(t, errors.IsInvalidState(err))
	})

	t.Run("item outside catalog", func(t *testing.T) {
		it := registry.NewItem(keys.Key(keys.Count()+1), true)
		assert.True(t, errors.IsUnknownKey(EncodeItem(Document{}, it)))
	})

	t.Run("non-finite double", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.SetDouble(keys.MaximumTableDirectorySizeInGB, math.Inf(1)))
		_, err := EncodeString(r)
		assert.True(t, errors.IsInvalidState(err))
	})
}

func TestMarshal(t *testing.T) {
	raw, err := Marshal(Document{
		"zeta":            "unknown",
		"SAVE_RAW_TABLES": true,
		"alpha":           2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"SAVE_RAW_TABLES":true,"alpha":2.5,"zeta":"unknown"}`, string(raw))

	raw, err = Marshal(Document{"a.b": 1e21})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a.b": 1e21}`, string(raw))

	_, err = Marshal(Document{"x": math.NaN()})
	assert.True(t, errors.IsInvalidState(err))
}

func TestFormatDouble(t *testing.T) {
	assert.Equal(t, "1.0", formatDouble(1))
	assert.Equal(t, "-0.0", formatDouble(math.Copysign(0, -1)))
	assert.Equal(t, "0.1", formatDouble(0.1))
	assert.Equal(t, "1e+21", formatDouble(1e21))
	assert.Equal(t, "101325.0", formatDouble(101325))
}

func TestEncodeIndent(t *testing.T) {
	r := registry.New()
	out, err := EncodeIndent(r, "  ")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "\n  \"NORMALIZE_GAS_CONSTANTS\": true,")
	assert.Contains(t, text, `"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": 1.0`)
	assert.JSONEq(t, defaultDocument, text)

	require.NoError(t, DecodeBytes(r, out))
}
