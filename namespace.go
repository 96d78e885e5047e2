package almanac

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Namespace is the façade through which application code reads resolved
// option values for one named partition of the option space. Namespaces
// with different names keep independent defaults and rc files, so options
// in different namespaces may share names without collision.
//
// A namespace derives its external interface from its name:
//
//	global rc file:  ~/.<name>.rc
//	local rc file:   ./<name>.rc
//	env variables:   <NAME>_<OPTION> (uppercased, dots to underscores)
//	CLI flags:       --<option>
//
// A sectioned namespace additionally keeps one almanac per section,
// resolved from the matching [section] table of the rc files and from
// section-prefixed env/CLI candidates (<NAME>_<SECTION>_<OPTION>,
// --<section>_<option>). Section reads fall back to the default-section
// value when no source explicitly set the option for that section.
type Namespace struct {
	name         string
	base         *Almanac
	sections     map[string]*Almanac
	sectionNames []string
	searchEnv    bool
	leftover     []string
}

// NewNamespace creates a namespace with the given option templates.
func NewNamespace(name string, templates []Template) (*Namespace, error) {
	return NewSectionedNamespace(name, templates, nil)
}

// NewSectionedNamespace creates a namespace whose options can additionally
// be overridden per section.
func NewSectionedNamespace(name string, templates []Template, sections []string) (*Namespace, error) {
	if !isValidName(name) {
		return nil, fmt.Errorf("%w: namespace %q", ErrInvalidName, name)
	}

	base, err := New(templates...)
	if err != nil {
		return nil, err
	}

	ns := &Namespace{
		name:      name,
		base:      base,
		sections:  make(map[string]*Almanac),
		searchEnv: true,
	}

	for _, section := range sections {
		if !isValidKeySegment(section) {
			return nil, fmt.Errorf("%w: section %q", ErrInvalidName, section)
		}
		if _, dup := ns.sections[section]; dup {
			return nil, fmt.Errorf("%w: section %q", ErrDuplicateOption, section)
		}
		sec, err := New(templates...)
		if err != nil {
			return nil, err
		}
		ns.sections[section] = sec
		ns.sectionNames = append(ns.sectionNames, section)
	}
	sort.Strings(ns.sectionNames)

	return ns, nil
}

// Name returns the namespace name.
func (ns *Namespace) Name() string { return ns.name }

// Almanac returns the namespace's default-section almanac.
func (ns *Namespace) Almanac() *Almanac { return ns.base }

// Section returns the almanac for a named section, or nil if the section
// is unknown.
func (ns *Namespace) Section(section string) *Almanac {
	return ns.sections[section]
}

// SectionNames returns the sorted section names.
func (ns *Namespace) SectionNames() []string {
	return append([]string(nil), ns.sectionNames...)
}

// DisableEnvSearch turns off the environment variable source for
// subsequent resolution passes. Useful when option names would collide
// with standard environment variables such as HOME.
func (ns *Namespace) DisableEnvSearch() { ns.searchEnv = false }

// GlobalRCPath returns the conventional global rc file path,
// ~/.<name>.rc, or "" if the home directory cannot be determined.
func (ns *Namespace) GlobalRCPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+ns.name+".rc")
}

// LocalRCPath returns the conventional local rc file path, ./<name>.rc.
func (ns *Namespace) LocalRCPath() string {
	return ns.name + ".rc"
}

// SetDefaults applies programmatic script-level defaults. Keys carrying a
// known section prefix ("<section>_<option>") route to that section's
// almanac unless the full key is itself a registered option; all other
// keys apply to the default section. Unknown names are silently dropped.
func (ns *Namespace) SetDefaults(defaults map[string]any) {
	baseDefaults := make(map[string]any)
	sectionDefaults := make(map[string]map[string]any)

	for key, value := range defaults {
		if _, registered := ns.base.Lookup(key); registered {
			baseDefaults[key] = value
			continue
		}
		routed := false
		for _, section := range ns.sectionNames {
			prefix := section + "_"
			if strings.HasPrefix(key, prefix) {
				if sectionDefaults[section] == nil {
					sectionDefaults[section] = make(map[string]any)
				}
				sectionDefaults[section][strings.TrimPrefix(key, prefix)] = value
				routed = true
				break
			}
		}
		if !routed {
			baseDefaults[key] = value
		}
	}

	ns.base.SetDefaults(baseDefaults)
	for section, m := range sectionDefaults {
		ns.sections[section].SetDefaults(m)
	}
}

// Resolve runs the namespace's resolution pass against the conventional
// global and local rc file paths. args is the process argument list;
// consumed flags are stripped, and the remainder is available from
// Leftover.
func (ns *Namespace) Resolve(args []string) error {
	return ns.ResolveFiles(args, ns.GlobalRCPath(), ns.LocalRCPath())
}

// ResolveFiles is Resolve with explicit rc file paths.
func (ns *Namespace) ResolveFiles(args []string, globalFile, localFile string) error {
	envPrefix := defaultEnvTransform("")(ns.name) + "_"

	baseSection := ""
	if len(ns.sectionNames) > 0 {
		baseSection = "default"
	}

	var resolveErrors []error
	seen := make(map[string]bool)
	collect := func(err error) {
		// The same malformed file surfaces once per almanac that reads it;
		// report it once.
		if err == nil || seen[err.Error()] {
			return
		}
		seen[err.Error()] = true
		resolveErrors = append(resolveErrors, err)
	}

	collect(ns.base.Resolve(args, ResolveOptions{
		GlobalFile: globalFile,
		LocalFile:  localFile,
		Section:    baseSection,
		EnvPrefix:  envPrefix,
		DisableEnv: !ns.searchEnv,
	}))
	leftover := ns.base.Leftover()

	for _, section := range ns.sectionNames {
		sec := ns.sections[section]
		collect(sec.Resolve(leftover, ResolveOptions{
			GlobalFile: globalFile,
			LocalFile:  localFile,
			Section:    section,
			EnvPrefix:  envPrefix + defaultEnvTransform("")(section) + "_",
			DisableEnv: !ns.searchEnv,
			CLIPrefix:  section + "_",
		}))
		leftover = sec.Leftover()
	}

	ns.leftover = leftover
	return errors.Join(resolveErrors...)
}

// Option returns the resolved value of an option in the default section.
func (ns *Namespace) Option(name string) (any, error) {
	return ns.base.Get(name)
}

// OptionOr returns the resolved value, or fallback if the option is not
// registered.
func (ns *Namespace) OptionOr(name string, fallback any) any {
	if v, ok := ns.base.Lookup(name); ok {
		return v
	}
	return fallback
}

// Options returns a snapshot of all default-section option values.
func (ns *Namespace) Options() map[string]any {
	return ns.base.Snapshot()
}

// SectionOption returns the resolved value of an option for a section.
// The section-specific value wins when any source explicitly set it for
// that section; otherwise the default-section value applies.
func (ns *Namespace) SectionOption(section, name string) (any, error) {
	if section == "" || section == "default" {
		return ns.base.Get(name)
	}
	sec, exists := ns.sections[section]
	if !exists {
		return nil, fmt.Errorf("%w: section %q", ErrUnknownOption, section)
	}
	if sec.hasOverride(name) {
		return sec.Get(name)
	}
	return ns.base.Get(name)
}

// Leftover returns the command-line arguments not consumed by the most
// recent resolution pass.
func (ns *Namespace) Leftover() []string {
	return append([]string(nil), ns.leftover...)
}

// Warnings aggregates the warnings recorded across the namespace's
// almanacs.
func (ns *Namespace) Warnings() []string {
	warnings := ns.base.Warnings()
	for _, section := range ns.sectionNames {
		warnings = append(warnings, ns.sections[section].Warnings()...)
	}
	return warnings
}

// hasOverride reports whether any source explicitly set a value for the
// option, beyond its hard-coded default.
func (a *Almanac) hasOverride(name string) bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	it, exists := a.items[name]
	return exists && len(it.values) > 0
}
