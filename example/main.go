// Demo of layered option resolution: registers the adjoint option
// catalog, resolves it against rc files, environment, and CLI flags, and
// prints the outcome.
//
// Try:
//
//	MEEP_ADJOINT_RES=40 go run ./example --fcen 1.5 --dpml 0.5 extra-arg
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/almanac"
)

func main() {
	ns, err := almanac.NewAdjointOptions(map[string]any{
		"fcen": 1.0,
		"df":   0.25,
	}, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "option resolution: %v\n", err)
	}

	opts := ns.Almanac()

	fcen, _ := opts.Float64("fcen")
	res, _ := opts.Float64("res")
	dpml, _ := opts.Float64("dpml")
	verbose, _ := opts.Bool("verbose")

	fmt.Printf("fcen    = %v\n", fcen)
	fmt.Printf("res     = %v\n", res)
	fmt.Printf("dpml    = %v\n", dpml)
	fmt.Printf("verbose = %v\n", verbose)

	fmt.Printf("sources for fcen: %v\n", opts.GetSources("fcen"))
	fmt.Printf("leftover args: %v\n", ns.Leftover())

	for _, w := range ns.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
