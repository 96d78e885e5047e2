package almanac

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolvePrecedence(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("DefaultsSurviveAbsentSources", func(t *testing.T) {
		a := MustNew(testTemplates()...)
		err := a.Resolve(nil, ResolveOptions{
			GlobalFile: filepath.Join(tmpDir, "no-such-global.rc"),
			LocalFile:  filepath.Join(tmpDir, "no-such-local.rc"),
			DisableEnv: true,
		})
		require.NoError(t, err)

		for _, tpl := range testTemplates() {
			val, err := a.Get(tpl.Name)
			require.NoError(t, err)
			def, _ := a.Default(tpl.Name)
			assert.Equal(t, def, val, "option %s", tpl.Name)
		}
	})

	t.Run("FullHierarchy", func(t *testing.T) {
		// Mirrors a typical user environment: a global rc file, a local rc
		// file, environment variables, and command-line arguments, each
		// overriding the previous layer for some subset of options.
		globalRC := writeFile(t, tmpDir, "hierarchy-global.rc", `
[default]
verbose = true
index = 0
omega = 0.00
title = 'Title zero'
`)
		localRC := writeFile(t, tmpDir, "hierarchy-local.rc", `
[default]
index = 1
omega = 1.11
title = 'Title one'
`)
		t.Setenv("TESTOPTS_OMEGA", "2.22")
		t.Setenv("TESTOPTS_TITLE", "Title two")

		a := MustNew(testTemplates()...)
		err := a.Resolve([]string{"--title", "Title three"}, ResolveOptions{
			GlobalFile: globalRC,
			LocalFile:  localRC,
			EnvPrefix:  "TESTOPTS_",
		})
		require.NoError(t, err)

		title, _ := a.String("title")
		assert.Equal(t, "Title three", title) // CLI wins

		omega, _ := a.Float64("omega")
		assert.Equal(t, 2.22, omega) // env beats both files

		index, _ := a.Int64("index")
		assert.Equal(t, int64(1), index) // local file beats global

		verbose, _ := a.Bool("verbose")
		assert.True(t, verbose) // only the global file set it

		mass, _ := a.Float64("mass")
		assert.Equal(t, 19.2, mass) // untouched, default survives
	})

	t.Run("CLIBeatsGlobalFile", func(t *testing.T) {
		// register fcen (float, default 1.0); global file sets fcen=1.2;
		// local file absent; environment unset; CLI supplies --fcen 1.5.
		globalRC := writeFile(t, tmpDir, "fcen-global.rc", "fcen = 1.2\n")

		a := MustNew(Template{Name: "fcen", Default: 1.0})
		err := a.Resolve([]string{"--fcen", "1.5"}, ResolveOptions{
			GlobalFile: globalRC,
			LocalFile:  filepath.Join(tmpDir, "absent.rc"),
			DisableEnv: true,
		})
		require.NoError(t, err)

		fcen, _ := a.Float64("fcen")
		assert.Equal(t, 1.5, fcen)

		sources := a.GetSources("fcen")
		assert.Equal(t, 1.2, sources[SourceGlobalFile])
		assert.Equal(t, 1.5, sources[SourceCLI])
	})

	t.Run("SentinelDefaultUntouched", func(t *testing.T) {
		a := MustNew(Template{Name: "dpml", Default: -1.0, Help: "PML width (-1 --> auto-select)"})
		require.NoError(t, a.Resolve(nil, ResolveOptions{DisableEnv: true}))

		dpml, _ := a.Float64("dpml")
		assert.Equal(t, -1.0, dpml)
	})
}

func TestResolveTypeSafety(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("MismatchRetainsResolvedValue", func(t *testing.T) {
		// register x with default 5, local file sets x=7, then an
		// environment candidate with an invalid type: the file value
		// survives.
		localRC := writeFile(t, tmpDir, "x-local.rc", "x = 7\n")
		t.Setenv("SAFE_X", "not-an-int")

		a := MustNew(Template{Name: "x", Default: 5})
		err := a.Resolve(nil, ResolveOptions{
			LocalFile: localRC,
			EnvPrefix: "SAFE_",
		})
		require.NoError(t, err)

		x, _ := a.Int64("x")
		assert.Equal(t, int64(7), x)

		require.NotEmpty(t, a.Warnings())
		assert.Contains(t, a.Warnings()[0], "x")
	})

	t.Run("MismatchIsIdempotent", func(t *testing.T) {
		t.Setenv("IDEM_X", "garbage")

		a := MustNew(Template{Name: "x", Default: 5})
		opts := ResolveOptions{EnvPrefix: "IDEM_"}

		// Repeated application of a malformed candidate never changes the
		// current value.
		for i := 0; i < 3; i++ {
			require.NoError(t, a.Resolve(nil, opts))
			x, _ := a.Int64("x")
			assert.Equal(t, int64(5), x)
		}
		assert.Len(t, a.Warnings(), 3)
	})

	t.Run("UnknownCandidatesInert", func(t *testing.T) {
		localRC := writeFile(t, tmpDir, "unknown-local.rc", `
x = 7
surprise = "never registered"

[mystery]
depth = 3
`)
		a := MustNew(Template{Name: "x", Default: 5})
		require.NoError(t, a.Resolve(nil, ResolveOptions{
			LocalFile:  localRC,
			DisableEnv: true,
		}))

		x, _ := a.Int64("x")
		assert.Equal(t, int64(7), x)

		// Unknown names neither raise nor alter registry size.
		assert.Equal(t, []string{"x"}, a.Names())
		assert.Empty(t, a.Warnings())
	})
}

func TestResolveParseErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("MalformedFileScopedToSource", func(t *testing.T) {
		globalRC := writeFile(t, tmpDir, "parse-global.rc", "omega = 0.5\n")
		localRC := writeFile(t, tmpDir, "parse-local.rc", "omega = = broken ][\n")

		a := MustNew(testTemplates()...)
		err := a.Resolve([]string{"--title", "cli-title"}, ResolveOptions{
			GlobalFile: globalRC,
			LocalFile:  localRC,
			DisableEnv: true,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)

		// The global file's contribution and the CLI source still apply.
		omega, _ := a.Float64("omega")
		assert.Equal(t, 0.5, omega)

		title, _ := a.String("title")
		assert.Equal(t, "cli-title", title)
	})

	t.Run("MissingFileIsNotAnError", func(t *testing.T) {
		a := MustNew(testTemplates()...)
		err := a.Resolve(nil, ResolveOptions{
			GlobalFile: filepath.Join(tmpDir, "nope.rc"),
			LocalFile:  filepath.Join(tmpDir, "also-nope.rc"),
			DisableEnv: true,
		})
		assert.NoError(t, err)
	})
}

func TestSetDefaultsOrderIndependence(t *testing.T) {
	// Script-level defaults occupy a slot below all file/env/CLI slots, so
	// applying them after resolution must not displace a file-sourced
	// value.
	tmpDir := t.TempDir()
	localRC := writeFile(t, tmpDir, "order-local.rc", "omega = 1.11\n")

	a := MustNew(testTemplates()...)
	require.NoError(t, a.Resolve(nil, ResolveOptions{
		LocalFile:  localRC,
		DisableEnv: true,
	}))

	a.SetDefaults(map[string]any{"omega": 9.99, "mass": 1.0})

	omega, _ := a.Float64("omega")
	assert.Equal(t, 1.11, omega) // file still wins

	mass, _ := a.Float64("mass")
	assert.Equal(t, 1.0, mass) // nothing above the custom slot for mass
}

func TestResolveLeftoverArgs(t *testing.T) {
	a := MustNew(testTemplates()...)
	args := []string{
		"positional",
		"--title=from-cli",
		"--unrelated", "flag-value",
		"--omega", "2.5",
		"--", "--title", "after-separator",
	}
	require.NoError(t, a.Resolve(args, ResolveOptions{DisableEnv: true}))

	title, _ := a.String("title")
	assert.Equal(t, "from-cli", title)

	omega, _ := a.Float64("omega")
	assert.Equal(t, 2.5, omega)

	// Consumed flags are stripped; everything else, including the
	// separator and what follows it, passes through untouched.
	assert.Equal(t, []string{
		"positional",
		"--unrelated", "flag-value",
		"--", "--title", "after-separator",
	}, a.Leftover())

	assert.Equal(t, args, a.OriginalArgs())
}
