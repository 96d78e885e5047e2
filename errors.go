package almanac

import "errors"

// Sentinel errors returned by registration, resolution, and read operations.
// Structural problems (duplicate or unknown names, registration after
// sealing) are programmer errors and surface immediately. Data problems
// from external sources are either scoped (ErrParse covers one source's
// contribution) or demoted to recorded warnings so that option resolution
// never prevents program startup.
var (
	// ErrDuplicateOption indicates two registrations with the same name.
	ErrDuplicateOption = errors.New("option already registered")

	// ErrUnknownOption indicates a read of a name that was never registered.
	ErrUnknownOption = errors.New("option not registered")

	// ErrSealed indicates registration was attempted after the first
	// resolution pass.
	ErrSealed = errors.New("almanac is sealed")

	// ErrParse indicates malformed content in an rc file. It aborts that
	// source's contribution only; previously resolved values are retained.
	ErrParse = errors.New("rc file parse error")

	// ErrInvalidName indicates an option name that is not a valid
	// dot-separated sequence of bare key segments.
	ErrInvalidName = errors.New("invalid option name")

	// ErrBadDefault indicates a template default whose Go type is not one
	// of bool, int, float, or string.
	ErrBadDefault = errors.New("unsupported default value type")

	// ErrTypeMismatch indicates a programmatic Set with a value that cannot
	// be coerced to the option's declared type.
	ErrTypeMismatch = errors.New("value has incompatible type")
)

// MaxEnvValueSize bounds the accepted length of a single environment
// variable value. Oversized values are dropped with a warning.
const MaxEnvValueSize = 64 << 10
