package almanac

import "strings"

// parseCLI extracts candidates from long-form command-line flags. Only
// flags matching registered options (after stripping an optional flag
// prefix) are consumed; everything else passes through to leftover
// untouched, so downstream argument parsers never see the options handled
// here. Both "--name value" and "--name=value" forms are accepted. A
// bool-kinded option is a switch: the bare "--name" form means true, and
// an explicit value requires the "=" form, so the token after the flag is
// never swallowed from a downstream parser. A lone "--" stops consumption
// and is passed through with the remaining arguments.
func (a *Almanac) parseCLI(args []string, prefix string) ([]Candidate, []string) {
	var cands []Candidate
	var leftover []string

	i := 0
	for i < len(args) {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			leftover = append(leftover, arg)
			i++
			continue
		}
		if arg == "--" {
			leftover = append(leftover, args[i:]...)
			break
		}

		key := strings.TrimPrefix(arg, "--")
		var valueStr string
		hasEquals := false
		if idx := strings.Index(key, "="); idx >= 0 {
			key, valueStr = key[:idx], key[idx+1:]
			hasEquals = true
		}

		name := key
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				leftover = append(leftover, arg)
				i++
				continue
			}
			name = strings.TrimPrefix(key, prefix)
		}

		kind, registered := a.kindIfRegistered(name)
		if !registered {
			leftover = append(leftover, arg)
			i++
			continue
		}

		switch {
		case hasEquals:
			i++
		case kind == KindBool:
			valueStr = "true"
			i++
		case i+1 < len(args) && !strings.HasPrefix(args[i+1], "--"):
			valueStr = args[i+1]
			i += 2
		default:
			// Missing value; coercion will reject and warn.
			valueStr = "true"
			i++
		}

		cands = append(cands, Candidate{Name: name, Value: valueStr})
	}

	return cands, leftover
}

// kindIfRegistered reports the declared kind of a registered option.
func (a *Almanac) kindIfRegistered(name string) (Kind, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	it, exists := a.items[name]
	return it.kind, exists
}
