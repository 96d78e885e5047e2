package almanac

import (
	"fmt"
	"os"
	"strings"
)

// EnvTransformFunc converts an option name to an environment variable name.
type EnvTransformFunc func(name string) string

// defaultEnvTransform creates the default environment variable
// transformer: dots to underscores, uppercase, optional prefix.
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(name string) string {
		env := strings.ReplaceAll(name, ".", "_")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// readEnv collects candidates from environment variables for every
// registered option. Re-invocable without side effects: the environment is
// only read, never modified.
func (a *Almanac) readEnv(opts ResolveOptions) []Candidate {
	transform := opts.EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(opts.EnvPrefix)
	}

	names := a.Names()

	var cands []Candidate
	var oversized []string
	for _, name := range names {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[name] {
			continue
		}

		envVar := transform(name)
		value, exists := os.LookupEnv(envVar)
		if !exists {
			continue
		}
		if len(value) > MaxEnvValueSize {
			oversized = append(oversized, envVar)
			continue
		}
		cands = append(cands, Candidate{Name: name, Value: value})
	}

	if len(oversized) > 0 {
		a.mutex.Lock()
		for _, envVar := range oversized {
			a.warnf("environment variable %s exceeds %d bytes (ignoring)", envVar, MaxEnvValueSize)
		}
		a.mutex.Unlock()
	}

	return cands
}

// DiscoverEnv finds all environment variables matching registered options
// and returns a map of option name to env var name for found variables.
func (a *Almanac) DiscoverEnv(prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)

	discovered := make(map[string]string)
	for _, name := range a.Names() {
		envVar := transform(name)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[name] = envVar
		}
	}
	return discovered
}

// ExportEnv exports the current option values as environment variable
// assignments. Only options whose value differs from the hard-coded
// default are exported.
func (a *Almanac) ExportEnv(prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	exports := make(map[string]string)
	for name, it := range a.items {
		if it.currentValue != it.defaultValue {
			exports[transform(name)] = fmt.Sprintf("%v", it.currentValue)
		}
	}
	return exports
}
