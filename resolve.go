package almanac

import (
	"errors"
)

// ResolveOptions configures one resolution pass. The precedence order of
// the sources themselves is fixed and not configurable.
type ResolveOptions struct {
	// GlobalFile is the path of the global rc file. Empty disables the
	// source; a missing file is silently skipped.
	GlobalFile string

	// LocalFile is the path of the local rc file, read after the global
	// one. Same absence semantics.
	LocalFile string

	// Section restricts rc file parsing to one named section. Empty parses
	// every section of every file.
	Section string

	// EnvPrefix is prepended to transformed environment variable names.
	// Example: "MYAPP_" maps "fcen" to MYAPP_FCEN.
	EnvPrefix string

	// EnvTransform customizes how option names map to environment
	// variables. If nil, names are uppercased with dots replaced by
	// underscores and EnvPrefix prepended.
	EnvTransform EnvTransformFunc

	// EnvWhitelist limits which options are checked for env vars
	// (nil = all).
	EnvWhitelist map[string]bool

	// DisableEnv skips the environment source entirely. Useful when option
	// names would collide with standard variables such as HOME.
	DisableEnv bool

	// CLIPrefix is prepended to option names when matching command-line
	// flags, e.g. a prefix "eps_" matches --eps_alpha for option "alpha".
	CLIPrefix string
}

// Resolve runs one full resolution pass: rc files, environment variables,
// and command-line arguments are consulted in fixed precedence order and
// their accepted candidates written into the option store. The first call
// seals the registry. args is the process argument list (os.Args[1:]);
// recognized flags are consumed, and the remainder is available from
// Leftover afterwards.
//
// A malformed rc file aborts that file's contribution only: its error is
// reported, previously resolved values are retained, and the remaining
// sources still apply. The combined error is the join of all per-source
// failures, or nil.
func (a *Almanac) Resolve(args []string, opts ResolveOptions) error {
	a.mutex.Lock()
	a.sealed = true
	a.opts = opts
	a.resolved = true
	a.originalArgs = append([]string(nil), args...)
	a.mutex.Unlock()

	var resolveErrors []error

	if opts.GlobalFile != "" {
		cands, err := readRCFile(opts.GlobalFile, opts.Section)
		if err != nil {
			resolveErrors = append(resolveErrors, err)
		} else {
			a.apply(SourceGlobalFile, cands)
		}
	}

	if opts.LocalFile != "" {
		cands, err := readRCFile(opts.LocalFile, opts.Section)
		if err != nil {
			resolveErrors = append(resolveErrors, err)
		} else {
			a.apply(SourceLocalFile, cands)
		}
	}

	if !opts.DisableEnv {
		a.apply(SourceEnv, a.readEnv(opts))
	}

	cands, leftover := a.parseCLI(args, opts.CLIPrefix)
	a.apply(SourceCLI, cands)

	a.mutex.Lock()
	a.leftover = leftover
	a.mutex.Unlock()

	return errors.Join(resolveErrors...)
}

// apply feeds one source's candidates into the option store. Unknown names
// are silently dropped for forward compatibility. A candidate that coerces
// to the option's declared kind overwrites that source's slot
// unconditionally; one that does not is dropped with a warning, so type
// mismatches never corrupt state, they only fail to update it.
func (a *Almanac) apply(source Source, cands []Candidate) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, cand := range cands {
		it, exists := a.items[cand.Name]
		if !exists {
			continue
		}

		v, ok := coerce(it.kind, cand.Value)
		if !ok {
			a.warnf("option %q: proposed %s value %v (%T) has incompatible type for %s (ignoring)",
				cand.Name, source, cand.Value, cand.Value, it.kind)
			continue
		}

		if it.values == nil {
			it.values = make(map[Source]any)
		}
		it.values[source] = v
		it.currentValue = computeValue(it)
		a.items[cand.Name] = it
	}
}
