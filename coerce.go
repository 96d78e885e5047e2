package almanac

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// coerce attempts to convert a raw candidate value to the canonical storage
// type for the given kind (bool, int64, float64, string). The boolean case
// is processed by hand since strconv.ParseBool does not cover the yes/no
// spellings accepted in rc files. Returns false when no safe conversion
// exists; the caller then drops the candidate and records a warning.
func coerce(kind Kind, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	if n, ok := raw.(json.Number); ok {
		raw = string(n)
	}

	switch kind {
	case KindBool:
		return coerceBool(raw)
	case KindInt:
		return coerceInt(raw)
	case KindFloat:
		return coerceFloat(raw)
	case KindString:
		return coerceString(raw)
	default:
		return nil, false
	}
}

func coerceBool(raw any) (any, bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), true
	case reflect.String:
		switch strings.ToLower(unquote(v.String())) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
		return nil, false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, true
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, true
	}
	return nil, false
}

func coerceInt(raw any) (any, bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(^uint64(0)>>1) {
			return nil, false // overflow
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != float64(int64(f)) {
			return nil, false // non-integral float
		}
		return int64(f), true
	case reflect.String:
		s := unquote(v.String())
		// Base 0 for auto-detection (e.g. "0xFF").
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return nil, false
	}
	return nil, false
}

func coerceFloat(raw any) (any, bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.String:
		if f, err := strconv.ParseFloat(unquote(v.String()), 64); err == nil {
			return f, true
		}
		return nil, false
	case reflect.Bool:
		if v.Bool() {
			return 1.0, true
		}
		return 0.0, true
	}
	return nil, false
}

func coerceString(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return unquote(v), true
	case []byte:
		return unquote(string(v)), true
	case fmt.Stringer:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return nil, false
}

// unquote removes one layer of matching single or double quotes.
// Rc file mediums do not reliably unquote string values themselves.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}
