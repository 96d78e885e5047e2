package almanac

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the resolved option values into the target struct or map.
// The target must be a non-nil pointer. Fields are matched through the
// "toml" struct tag; dotted option names produce nested sections. Weakly
// typed input is enabled so string-kinded options can populate richer
// field types (durations, slices).
func (a *Almanac) Scan(target any) error {
	return a.ScanSection("", target)
}

// ScanSection decodes the options under a dotted name prefix into target.
func (a *Almanac) ScanSection(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	a.mutex.RLock()
	nestedMap := make(map[string]any)
	for name, it := range a.items {
		setNestedValue(nestedMap, name, it.currentValue)
	}
	a.mutex.RUnlock()

	sectionData := navigateToPath(nestedMap, basePath)
	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("name %q refers to a non-section value (type %T)", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", basePath, target, err)
	}

	return nil
}

// navigateToPath traverses a nested map to reach the given dotted name.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}
