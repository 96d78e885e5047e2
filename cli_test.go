package almanac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCLI(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		prefix   string
		cands    []Candidate
		leftover []string
	}{
		{
			name:  "EqualsForm",
			args:  []string{"--omega=2.5"},
			cands: []Candidate{{Name: "omega", Value: "2.5"}},
		},
		{
			name:  "SpaceForm",
			args:  []string{"--omega", "2.5"},
			cands: []Candidate{{Name: "omega", Value: "2.5"}},
		},
		{
			name:  "BareBoolFlag",
			args:  []string{"--verbose"},
			cands: []Candidate{{Name: "verbose", Value: "true"}},
		},
		{
			name:  "BoolFlagEqualsValue",
			args:  []string{"--verbose=no"},
			cands: []Candidate{{Name: "verbose", Value: "no"}},
		},
		{
			name:     "BoolFlagNeverConsumesNextToken",
			args:     []string{"--verbose", "yes", "positional"},
			cands:    []Candidate{{Name: "verbose", Value: "true"}},
			leftover: []string{"yes", "positional"},
		},
		{
			name:     "UnknownFlagPassesThrough",
			args:     []string{"--nonexistent", "value"},
			leftover: []string{"--nonexistent", "value"},
		},
		{
			name:     "PositionalPassesThrough",
			args:     []string{"input.dat", "--omega=1.0", "output.dat"},
			cands:    []Candidate{{Name: "omega", Value: "1.0"}},
			leftover: []string{"input.dat", "output.dat"},
		},
		{
			name:     "SeparatorStopsConsumption",
			args:     []string{"--omega=1.0", "--", "--title", "raw"},
			cands:    []Candidate{{Name: "omega", Value: "1.0"}},
			leftover: []string{"--", "--title", "raw"},
		},
		{
			name: "MissingValueAtEnd",
			args: []string{"--omega"},
			// Coercion rejects "true" for a float option and warns.
			cands: []Candidate{{Name: "omega", Value: "true"}},
		},
		{
			name:     "FlagFollowedByFlag",
			args:     []string{"--omega", "--unknown"},
			cands:    []Candidate{{Name: "omega", Value: "true"}},
			leftover: []string{"--unknown"},
		},
		{
			name:   "PrefixedFlags",
			args:   []string{"--eps_omega", "1.5", "--omega", "2.5"},
			prefix: "eps_",
			cands:  []Candidate{{Name: "omega", Value: "1.5"}},
			// Unprefixed flag passes through for an outer parser, but its
			// value token is consumed into leftover too.
			leftover: []string{"--omega", "2.5"},
		},
		{
			name:  "MixedForms",
			args:  []string{"--title=My Title", "--index", "7", "--verbose"},
			cands: []Candidate{{Name: "title", Value: "My Title"}, {Name: "index", Value: "7"}, {Name: "verbose", Value: "true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustNew(testTemplates()...)
			cands, leftover := a.parseCLI(tt.args, tt.prefix)
			assert.Equal(t, tt.cands, cands)
			assert.Equal(t, tt.leftover, leftover)
		})
	}
}

func TestParseCLIMissingValueWarns(t *testing.T) {
	a := MustNew(testTemplates()...)
	require.NoError(t, a.Resolve([]string{"--omega"}, ResolveOptions{DisableEnv: true}))

	// The dangling flag cannot satisfy a float option; previous value
	// retained, warning recorded.
	omega, _ := a.Float64("omega")
	assert.Equal(t, 3.14, omega)
	require.NotEmpty(t, a.Warnings())
	assert.Contains(t, a.Warnings()[0], "omega")
}
