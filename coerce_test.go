package almanac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		raw      any
		expected any
		ok       bool
	}{
		// Booleans: processed by hand, covering the rc file spellings.
		{"BoolFromBool", KindBool, true, true, true},
		{"BoolFromTrue", KindBool, "true", true, true},
		{"BoolFromYes", KindBool, "yes", true, true},
		{"BoolFromOne", KindBool, "1", true, true},
		{"BoolFromCapitalTrue", KindBool, "True", true, true},
		{"BoolFromFalse", KindBool, "false", false, true},
		{"BoolFromNo", KindBool, "no", false, true},
		{"BoolFromZero", KindBool, "0", false, true},
		{"BoolFromQuoted", KindBool, "'True'", true, true},
		{"BoolFromNonzeroInt", KindBool, 3, true, true},
		{"BoolFromZeroFloat", KindBool, 0.0, false, true},
		{"BoolFromGarbage", KindBool, "maybe", nil, false},

		// Integers.
		{"IntFromInt", KindInt, 42, int64(42), true},
		{"IntFromInt64", KindInt, int64(-7), int64(-7), true},
		{"IntFromString", KindInt, "13", int64(13), true},
		{"IntFromHexString", KindInt, "0xFF", int64(255), true},
		{"IntFromIntegralFloat", KindInt, 5.0, int64(5), true},
		{"IntFromIntegralFloatString", KindInt, "5.0", int64(5), true},
		{"IntFromFractionalFloat", KindInt, 5.5, nil, false},
		{"IntFromGarbage", KindInt, "twelve", nil, false},
		{"IntFromJSONNumber", KindInt, json.Number("9"), int64(9), true},

		// Floats.
		{"FloatFromFloat", KindFloat, 2.5, 2.5, true},
		{"FloatFromInt", KindFloat, 3, 3.0, true},
		{"FloatFromString", KindFloat, "1.5", 1.5, true},
		{"FloatFromQuotedString", KindFloat, "\"2.22\"", 2.22, true},
		{"FloatFromBool", KindFloat, true, 1.0, true},
		{"FloatFromGarbage", KindFloat, "fast", nil, false},
		{"FloatFromJSONNumber", KindFloat, json.Number("0.25"), 0.25, true},

		// Strings: quotes stripped, scalars formatted.
		{"StringFromString", KindString, "plain", "plain", true},
		{"StringFromSingleQuoted", KindString, "'Title zero'", "Title zero", true},
		{"StringFromDoubleQuoted", KindString, "\"quoted\"", "quoted", true},
		{"StringFromInt", KindString, 7, "7", true},
		{"StringFromFloat", KindString, 1.5, "1.5", true},
		{"StringFromBool", KindString, false, "false", true},
		{"StringFromBytes", KindString, []byte("bytes"), "bytes", true},
		{"StringFromSlice", KindString, []int{1}, nil, false},

		// Nil never coerces.
		{"NilBool", KindBool, nil, nil, false},
		{"NilString", KindString, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerce(tt.kind, tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "abc", unquote("'abc'"))
	assert.Equal(t, "abc", unquote("\"abc\""))
	assert.Equal(t, "'abc\"", unquote("'abc\""))
	assert.Equal(t, "a", unquote("a"))
	assert.Equal(t, "", unquote(""))
	// Only one layer is removed.
	assert.Equal(t, "'x'", unquote("\"'x'\""))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		def        any
		kind       Kind
		normalized any
	}{
		{true, KindBool, true},
		{5, KindInt, int64(5)},
		{int32(5), KindInt, int64(5)},
		{uint16(9), KindInt, int64(9)},
		{1.5, KindFloat, 1.5},
		{float32(2), KindFloat, 2.0},
		{"s", KindString, "s"},
	}
	for _, tt := range tests {
		kind, norm, err := kindOf(tt.def)
		assert.NoError(t, err)
		assert.Equal(t, tt.kind, kind)
		assert.Equal(t, tt.normalized, norm)
	}

	_, _, err := kindOf(map[string]any{})
	assert.ErrorIs(t, err, ErrBadDefault)
}
