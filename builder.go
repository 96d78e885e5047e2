package almanac

import (
	"fmt"
	"os"
)

// ValidatorFunc validates a fully resolved Almanac. It runs at the end of
// the build process and should return an error if validation fails.
type ValidatorFunc func(a *Almanac) error

// Builder provides a fluent interface for constructing and resolving an
// almanac in one expression. The source precedence itself is fixed; the
// builder only configures where each source reads from.
type Builder struct {
	templates  []Template
	defaults   map[string]any
	opts       ResolveOptions
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a new almanac builder. Arguments default to
// os.Args[1:].
func NewBuilder() *Builder {
	return &Builder{
		args: os.Args[1:],
	}
}

// WithTemplates appends option templates to register.
func (b *Builder) WithTemplates(templates ...Template) *Builder {
	b.templates = append(b.templates, templates...)
	return b
}

// WithDefaults sets programmatic script-level default overrides.
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.defaults = defaults
	return b
}

// WithGlobalFile sets the global rc file path.
func (b *Builder) WithGlobalFile(path string) *Builder {
	b.opts.GlobalFile = path
	return b
}

// WithLocalFile sets the local rc file path.
func (b *Builder) WithLocalFile(path string) *Builder {
	b.opts.LocalFile = path
	return b
}

// WithSection restricts rc file parsing to one named section.
func (b *Builder) WithSection(section string) *Builder {
	b.opts.Section = section
	return b
}

// WithEnvPrefix sets the environment variable prefix.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnvTransform sets a custom environment variable transformer.
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.opts.EnvTransform = fn
	return b
}

// WithEnvWhitelist limits which options are checked for env vars.
func (b *Builder) WithEnvWhitelist(names ...string) *Builder {
	if b.opts.EnvWhitelist == nil {
		b.opts.EnvWhitelist = make(map[string]bool)
	}
	for _, name := range names {
		b.opts.EnvWhitelist[name] = true
	}
	return b
}

// WithoutEnv disables the environment variable source.
func (b *Builder) WithoutEnv() *Builder {
	b.opts.DisableEnv = true
	return b
}

// WithArgs sets the command-line arguments to consume from.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function that runs after resolution.
// Multiple validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build registers the templates, applies defaults, runs the resolution
// pass, and validates the result.
func (b *Builder) Build() (*Almanac, error) {
	a, err := New(b.templates...)
	if err != nil {
		return nil, err
	}

	if b.defaults != nil {
		a.SetDefaults(b.defaults)
	}

	if err := a.Resolve(b.args, b.opts); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(a); err != nil {
			return nil, fmt.Errorf("option validation failed: %w", err)
		}
	}

	return a, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Almanac {
	a, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("almanac build failed: %v", err))
	}
	return a
}

// BuildAndScan builds and decodes the resolved options into the provided
// target struct pointer.
func (b *Builder) BuildAndScan(target any) (*Almanac, error) {
	a, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := a.Scan(target); err != nil {
		return nil, fmt.Errorf("failed to scan resolved options: %w", err)
	}
	return a, nil
}
