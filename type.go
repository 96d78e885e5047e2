package almanac

import "fmt"

// Typed getters for resolved option values. Stored values already have the
// canonical type for their declared kind, so these perform a checked
// assertion rather than a conversion; reading an option through the wrong
// getter is a programmer error.

// Bool returns the value of a bool-kinded option.
func (a *Almanac) Bool(name string) (bool, error) {
	val, err := a.Get(name)
	if err != nil {
		return false, err
	}
	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("option %q is not bool-kinded (holds %T)", name, val)
}

// Int64 returns the value of an int-kinded option.
func (a *Almanac) Int64(name string) (int64, error) {
	val, err := a.Get(name)
	if err != nil {
		return 0, err
	}
	if i, ok := val.(int64); ok {
		return i, nil
	}
	return 0, fmt.Errorf("option %q is not int-kinded (holds %T)", name, val)
}

// Float64 returns the value of a float-kinded option.
func (a *Almanac) Float64(name string) (float64, error) {
	val, err := a.Get(name)
	if err != nil {
		return 0.0, err
	}
	if f, ok := val.(float64); ok {
		return f, nil
	}
	return 0.0, fmt.Errorf("option %q is not float-kinded (holds %T)", name, val)
}

// String returns the value of a string-kinded option.
func (a *Almanac) String(name string) (string, error) {
	val, err := a.Get(name)
	if err != nil {
		return "", err
	}
	if s, ok := val.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("option %q is not string-kinded (holds %T)", name, val)
}
