package almanac

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// item holds the declared type, default, and per-source values for one
// registered option. currentValue is recomputed from the source slots
// whenever any of them changes, so re-applying a source is idempotent.
type item struct {
	kind         Kind
	defaultValue any
	currentValue any
	help         string
	values       map[Source]any
}

// Almanac is a database of typed option values resolved from rc files,
// environment variables, and command-line arguments in fixed precedence
// order. Registration happens first; the first Resolve call seals the
// registry, after which the almanac serves concurrent reads.
type Almanac struct {
	mutex  sync.RWMutex
	items  map[string]item
	sealed bool

	opts     ResolveOptions
	resolved bool

	leftover     []string
	originalArgs []string

	warnings   []string
	warnWriter io.Writer

	watcher *watcher
}

// New creates an empty Almanac and registers the given templates.
// Registration errors are fatal: they indicate programmer mistakes
// (duplicate names, invalid names, unsupported default types).
func New(templates ...Template) (*Almanac, error) {
	a := &Almanac{items: make(map[string]item)}
	for _, t := range templates {
		if err := a.Register(t); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(templates ...Template) *Almanac {
	a, err := New(templates...)
	if err != nil {
		panic(fmt.Sprintf("almanac: %v", err))
	}
	return a
}

// Register makes an option known to the almanac. The name must be a
// dot-separated sequence of bare key segments and unique within this
// almanac. Registering after the first resolution pass fails with
// ErrSealed.
func (a *Almanac) Register(t Template) error {
	if !isValidName(t.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, t.Name)
	}

	kind, def, err := kindOf(t.Default)
	if err != nil {
		return fmt.Errorf("option %q: %w", t.Name, err)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrSealed, t.Name)
	}
	if _, exists := a.items[t.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateOption, t.Name)
	}

	a.items[t.Name] = item{
		kind:         kind,
		defaultValue: def,
		currentValue: def,
		help:         t.Help,
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (a *Almanac) MustRegister(t Template) {
	if err := a.Register(t); err != nil {
		panic(fmt.Sprintf("almanac: %v", err))
	}
}

// Sealed reports whether the registry has been sealed by a resolution pass.
func (a *Almanac) Sealed() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.sealed
}

// Names returns the sorted list of registered option names.
func (a *Almanac) Names() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	names := make([]string, 0, len(a.items))
	for name := range a.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind returns the declared kind of an option.
func (a *Almanac) Kind(name string) (Kind, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	it, exists := a.items[name]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return it.kind, nil
}

// Get returns the current resolved value of an option. The value has the
// canonical Go type for the option's kind (bool, int64, float64, string).
func (a *Almanac) Get(name string) (any, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	it, exists := a.items[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return it.currentValue, nil
}

// Lookup returns the current value of an option and whether it is
// registered, without producing an error for unknown names.
func (a *Almanac) Lookup(name string) (any, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	it, exists := a.items[name]
	if !exists {
		return nil, false
	}
	return it.currentValue, true
}

// GetWithOverrides returns the value for name, unless the overrides map
// carries a candidate of the proper type for it, in which case the
// override wins. An override of an incompatible type is ignored, matching
// the resolver contract.
func (a *Almanac) GetWithOverrides(name string, overrides map[string]any) (any, error) {
	a.mutex.RLock()
	it, exists := a.items[name]
	a.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	if raw, ok := overrides[name]; ok {
		if v, ok := coerce(it.kind, raw); ok {
			return v, nil
		}
	}
	return it.currentValue, nil
}

// Default returns the hard-coded default value of an option.
func (a *Almanac) Default(name string) (any, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	it, exists := a.items[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return it.defaultValue, nil
}

// Set overwrites the current value of an option with a runtime override.
// The value passes through the same coercion contract as source
// candidates; an incompatible value fails with ErrTypeMismatch and leaves
// the stored value untouched. Note that a subsequent file reload through
// the watcher recomputes from source slots and discards direct overrides;
// use SetSource to place a durable value in a specific slot.
func (a *Almanac) Set(name string, value any) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	it, exists := a.items[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	v, ok := coerce(it.kind, value)
	if !ok {
		return fmt.Errorf("%w: option %q (%s) given %v (%T)",
			ErrTypeMismatch, name, it.kind, value, value)
	}

	it.currentValue = v
	a.items[name] = it
	return nil
}

// SetSource places a value in a specific source slot and recomputes the
// current value from precedence. The value passes through coercion.
func (a *Almanac) SetSource(name string, source Source, value any) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	it, exists := a.items[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	v, ok := coerce(it.kind, value)
	if !ok {
		return fmt.Errorf("%w: option %q (%s) given %v (%T)",
			ErrTypeMismatch, name, it.kind, value, value)
	}

	if it.values == nil {
		it.values = make(map[Source]any)
	}
	it.values[source] = v
	it.currentValue = computeValue(it)
	a.items[name] = it
	return nil
}

// GetSources returns the per-source values recorded for an option,
// for inspection of where a setting originated.
func (a *Almanac) GetSources(name string) map[Source]any {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	it, exists := a.items[name]
	if !exists {
		return nil
	}
	sources := make(map[Source]any, len(it.values)+1)
	sources[SourceDefault] = it.defaultValue
	for s, v := range it.values {
		sources[s] = v
	}
	return sources
}

// SetDefaults applies programmatic script-level defaults. Candidates for
// unknown names are silently dropped; candidates of incompatible type are
// dropped with a warning. These defaults occupy a dedicated slot below the
// file, environment, and CLI slots, so the effective order is the same
// whether SetDefaults runs before or after Resolve.
func (a *Almanac) SetDefaults(defaults map[string]any) {
	cands := make([]Candidate, 0, len(defaults))
	for name, value := range defaults {
		cands = append(cands, Candidate{Name: name, Value: value})
	}
	a.apply(SourceCustom, cands)
}

// Merge folds another almanac's current values into this one. Names absent
// from the receiver are dropped; values pass through coercion.
func (a *Almanac) Merge(partner *Almanac) {
	partner.mutex.RLock()
	cands := make([]Candidate, 0, len(partner.items))
	for name, it := range partner.items {
		cands = append(cands, Candidate{Name: name, Value: it.currentValue})
	}
	partner.mutex.RUnlock()

	a.mutex.Lock()
	defer a.mutex.Unlock()
	for _, cand := range cands {
		it, exists := a.items[cand.Name]
		if !exists {
			continue
		}
		if v, ok := coerce(it.kind, cand.Value); ok {
			it.currentValue = v
			a.items[cand.Name] = it
		}
	}
}

// Snapshot returns a copy of all current option values keyed by name.
func (a *Almanac) Snapshot() map[string]any {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.snapshotLocked()
}

func (a *Almanac) snapshotLocked() map[string]any {
	snapshot := make(map[string]any, len(a.items))
	for name, it := range a.items {
		snapshot[name] = it.currentValue
	}
	return snapshot
}

// Leftover returns the command-line arguments that were not consumed by
// the most recent resolution pass, in their original order, for
// downstream argument parsers.
func (a *Almanac) Leftover() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return append([]string(nil), a.leftover...)
}

// OriginalArgs returns the argument list as it was before CLI flags were
// consumed and stripped.
func (a *Almanac) OriginalArgs() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return append([]string(nil), a.originalArgs...)
}

// SetWarnWriter streams subsequent warning diagnostics to w in addition to
// collecting them. Pass nil to collect only.
func (a *Almanac) SetWarnWriter(w io.Writer) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.warnWriter = w
}

// Warnings returns the non-fatal diagnostics recorded so far, oldest
// first. Type mismatches during resolution land here rather than failing
// the resolution.
func (a *Almanac) Warnings() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return append([]string(nil), a.warnings...)
}

// warnf records a warning. Caller must hold the write lock.
func (a *Almanac) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.warnings = append(a.warnings, msg)
	if a.warnWriter != nil {
		fmt.Fprintf(a.warnWriter, "almanac: warning: %s\n", msg)
	}
}

// computeValue derives the current value of an item from its source slots
// in fixed precedence order, falling back to the hard-coded default.
func computeValue(it item) any {
	for i := len(sourceOrder) - 1; i >= 0; i-- {
		if v, exists := it.values[sourceOrder[i]]; exists {
			return v
		}
	}
	return it.defaultValue
}
