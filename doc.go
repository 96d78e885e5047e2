// Package almanac provides thread-safe, layered option resolution for Go
// applications: a registry of typed options whose values are harvested from
// rc files, environment variables, and command-line arguments in a fixed
// precedence order.
//
// Features:
//   - Typed options (bool, int, float, string) with type-checked updates
//   - Fixed precedence: defaults < programmatic defaults < global rc file
//     < local rc file < environment variables < command-line arguments
//   - TOML rc files with automatic JSON/YAML fallback detection
//   - Section-aware rc files for per-section option overrides
//   - Command-line flags consumed and stripped, leaving unrecognized
//     arguments untouched for downstream parsers
//   - Type mismatches never corrupt state: bad candidates are dropped with
//     a recorded warning and the previous value is retained
//   - Thread-safe reads after resolution using sync.RWMutex
//   - Builder pattern and namespace façades for easy initialization
//   - Struct decoding of resolved values via mapstructure
//   - Optional polling watcher that re-resolves the local rc file on change
//
// Quick Start:
//
//	ns, err := almanac.NewNamespace("myapp", []almanac.Template{
//	    {Name: "fcen", Default: 1.0, Help: "source center frequency"},
//	    {Name: "verbose", Default: false, Help: "produce more output"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ns.Resolve(os.Args[1:]); err != nil {
//	    log.Fatal(err)
//	}
//
//	fcen, _ := ns.Almanac().Float64("fcen")
//
// Precedence (lowest to highest):
//  1. Hard-coded template defaults
//  2. Programmatic defaults (SetDefaults)
//  3. Global rc file (~/.myapp.rc)
//  4. Local rc file (./myapp.rc)
//  5. Environment variables (MYAPP_FCEN=1.3)
//  6. Command-line arguments (--fcen 1.5)
//
// The order is fixed: it encodes increasing specificity, with broader
// shared defaults overridden by settings closer to the invocation.
//
// Thread Safety:
// All operations are thread-safe. Resolution is sequential; after the
// almanac is sealed by the first Resolve call, concurrent readers need no
// external synchronization. Post-seal mutation (Set, watcher reloads) is
// funneled through the same coercion contract that protects resolution.
package almanac
