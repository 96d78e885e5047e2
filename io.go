package almanac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// readRCFile reads one rc file and returns its candidates. A missing file
// is not an error condition: it yields an empty candidate set. Malformed
// content fails with an error wrapping ErrParse, which the caller scopes
// to this source only.
//
// The rc grammar is TOML with optional [section] tables; files whose
// content parses as JSON or YAML are accepted too (detected by extension,
// then by content). Top-level scalar keys belong to the default section:
// they produce candidates only when the section filter is empty or
// "default", so a section-scoped read never mistakes them for
// section-specific settings. Keys inside a section table produce
// candidates when the filter is empty or matches the table name
// (case-insensitive). Raw values may be native typed values or quoted
// strings; coercion handles both.
func readRCFile(path, section string) ([]Candidate, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rc file '%s': %w", path, err)
	}

	fileConfig, err := parseRCData(path, fileData)
	if err != nil {
		return nil, err
	}

	var cands []Candidate
	for key, value := range fileConfig {
		table, isTable := value.(map[string]any)
		if !isTable {
			if section == "" || strings.EqualFold(section, "default") {
				cands = append(cands, Candidate{Name: key, Value: value})
			}
			continue
		}
		if section != "" && !strings.EqualFold(key, section) {
			continue
		}
		for name, v := range flattenMap(table, "") {
			cands = append(cands, Candidate{Name: name, Value: v})
		}
	}

	// Map iteration order is random; sort for deterministic diagnostics.
	sort.Slice(cands, func(i, j int) bool { return cands[i].Name < cands[j].Name })
	return cands, nil
}

// parseRCData unmarshals rc file content according to the detected format.
func parseRCData(path string, data []byte) (map[string]any, error) {
	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			format = "toml"
		}
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("%w: TOML rc file '%s': %v", ErrParse, path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("%w: JSON rc file '%s': %v", ErrParse, path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("%w: YAML rc file '%s': %v", ErrParse, path, err)
		}
	}
	return fileConfig, nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		// .rc and friends: detect from content.
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// TOML before YAML: YAML is permissive enough to accept most TOML
	// bodies as a single scalar.
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}

// Save writes the current option values to a TOML file atomically.
func (a *Almanac) Save(path string) error {
	a.mutex.RLock()
	nestedData := make(map[string]any)
	for name, it := range a.items {
		setNestedValue(nestedData, name, it.currentValue)
	}
	a.mutex.RUnlock()

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(nestedData); err != nil {
		return fmt.Errorf("failed to marshal option data to TOML: %w", err)
	}

	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile writes data through a temporary file in the destination
// directory and renames it into place, so readers never observe a
// partially written file.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // No-op once the rename succeeds

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// flattenMap converts a nested map to a flat map with dot-notation names.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subName, subValue := range flattenMap(nestedMap, name) {
				flat[subName] = subValue
			}
		} else {
			flat[name] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation name,
// creating intermediate maps as needed.
func setNestedValue(nested map[string]any, name string, value any) {
	segments := strings.Split(name, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]
		if next, exists := current[segment]; exists {
			if nextMap, isMap := next.(map[string]any); isMap {
				current = nextMap
				continue
			}
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}
