package almanac

import (
	"fmt"
	"strings"
)

// Kind is the declared type of an option. It is inferred from the Go type
// of the template default and constrains every subsequent update: a
// candidate value that cannot be coerced to the option's Kind is dropped.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Template declares one configurable option: its name, hard-coded default
// value, and a usage string for generated documentation. The option's Kind
// is inferred from the default.
type Template struct {
	Name    string
	Default any
	Help    string
}

// kindOf infers the declared Kind from a default value and returns the
// value normalized to the canonical storage type for that kind
// (bool, int64, float64, or string).
func kindOf(def any) (Kind, any, error) {
	switch v := def.(type) {
	case bool:
		return KindBool, v, nil
	case int:
		return KindInt, int64(v), nil
	case int8:
		return KindInt, int64(v), nil
	case int16:
		return KindInt, int64(v), nil
	case int32:
		return KindInt, int64(v), nil
	case int64:
		return KindInt, v, nil
	case uint:
		return KindInt, int64(v), nil
	case uint8:
		return KindInt, int64(v), nil
	case uint16:
		return KindInt, int64(v), nil
	case uint32:
		return KindInt, int64(v), nil
	case float32:
		return KindFloat, float64(v), nil
	case float64:
		return KindFloat, v, nil
	case string:
		return KindString, v, nil
	default:
		return 0, nil, fmt.Errorf("%w: %T", ErrBadDefault, def)
	}
}

// isValidName checks that a name is a dot-separated sequence of valid bare
// key segments.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !isValidKeySegment(segment) {
			return false
		}
	}
	return true
}

// isValidKeySegment checks if a single name segment is a valid TOML bare
// key part: ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
