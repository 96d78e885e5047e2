package almanac

// Source identifies one provider of candidate option values. Sources are
// applied in a fixed, total precedence order; the order is not
// configurable. It encodes increasing specificity: broader, shared
// defaults are overridden by settings closer to the invocation.
type Source string

const (
	// SourceDefault represents the hard-coded template default values.
	SourceDefault Source = "default"
	// SourceCustom represents programmatic script-level defaults
	// supplied via SetDefaults.
	SourceCustom Source = "custom"
	// SourceGlobalFile represents values from the global rc file
	// (~/.<name>.rc).
	SourceGlobalFile Source = "global-file"
	// SourceLocalFile represents values from the local rc file
	// (./<name>.rc).
	SourceLocalFile Source = "local-file"
	// SourceEnv represents values from environment variables.
	SourceEnv Source = "env"
	// SourceCLI represents values from command-line arguments.
	SourceCLI Source = "cli"
)

// sourceOrder lists the override sources from lowest to highest
// precedence. SourceDefault is implicit below all of them.
var sourceOrder = []Source{
	SourceCustom,
	SourceGlobalFile,
	SourceLocalFile,
	SourceEnv,
	SourceCLI,
}

// Candidate is one (name, raw value) pair proposed by a source. The raw
// value may be a string from a textual medium or an already-typed value
// from a structured file; either way it passes through coercion before it
// can overwrite anything.
type Candidate struct {
	Name  string
	Value any
}
