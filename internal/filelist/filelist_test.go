package filelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/amvars/internal/manifest"
)

const pangoManifest = `# pango Makefile.am excerpt
pango_introspection_files = \
	break.c \
	pango-color-table.h \
	pango-impl-utils-private.h \
	pango-layout.c \
	pango-layout.h

pangoft2_introspection_files = pangofc-font.c pangoft2-private.h pangoft2.h

libpangocairo_1_0_la_SOURCES = pangocairo-context.c
pangocairo_headers = pangocairo.h

if HAVE_CAIRO_WIN32
libpangocairo_1_0_la_SOURCES += pangocairo-win32font.c
endif

if HAVE_CAIRO_FREETYPE
libpangocairo_1_0_la_SOURCES += pangocairo-fcfont.c
pangocairo_headers += pangocairo-fc-private.h
endif

all-local: pango_list
	@echo done
`

// setupTree writes the manifest under root/pango and returns the options.
func setupTree(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "pango")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile.am"), []byte(pangoManifest), 0644))

	return Options{SrcRoot: root, Subdir: "pango"}
}

func jobNamed(t *testing.T, name string) Job {
	t.Helper()
	for _, job := range DefaultJobs() {
		if job.Name == name {
			return job
		}
	}
	t.Fatalf("no job %q", name)
	return Job{}
}

func TestExclude_Match(t *testing.T) {
	ex := Exclude{Suffixes: []string{"-private.h"}, Names: []string{"pango-color-table.h"}}

	assert.True(t, ex.Match("pango-impl-utils-private.h"))
	assert.True(t, ex.Match("pango-color-table.h"))
	assert.False(t, ex.Match("pango-layout.h"))
	assert.False(t, Exclude{}.Match("anything"))
}

func TestSources(t *testing.T) {
	opts := setupTree(t)
	r := manifest.NewResolver()

	t.Run("pango drops private headers and color table", func(t *testing.T) {
		got, err := Sources(r, jobNamed(t, "pango"), opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"break.c", "pango-layout.c", "pango-layout.h"}, got)
	})

	t.Run("pangoft", func(t *testing.T) {
		got, err := Sources(r, jobNamed(t, "pangoft"), opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"pangofc-font.c", "pangoft2.h"}, got)
	})

	t.Run("pangocairo without fontconfig", func(t *testing.T) {
		got, err := Sources(r, jobNamed(t, "pangocairo"), opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"pangocairo-context.c", "pangocairo-win32font.c", "pangocairo.h"}, got)
	})

	t.Run("pangocairo with fontconfig", func(t *testing.T) {
		withFc := opts
		withFc.Extra = true

		got, err := Sources(r, jobNamed(t, "pangocairo"), withFc)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"pangocairo-context.c",
			"pangocairo-win32font.c",
			"pangocairo-fcfont.c",
			"pangocairo.h",
		}, got)
	})

	t.Run("missing manifest", func(t *testing.T) {
		bad := opts
		bad.Subdir = "nope"

		_, err := Sources(r, jobNamed(t, "pango"), bad)
		assert.ErrorIs(t, err, manifest.ErrIOFailure)
	})
}

func TestJob_ManifestPath(t *testing.T) {
	job := Job{Manifest: "Makefile.am"}

	assert.Equal(t, filepath.Join("..", "pango", "Makefile.am"),
		job.ManifestPath(Options{SrcRoot: "..", Subdir: "pango"}))
	assert.Equal(t, filepath.Join("/build", "pango", "Makefile.am"),
		job.ManifestPath(Options{SrcRoot: "..", Subdir: "pango", Base: "/build/win32"}))
	assert.Equal(t, filepath.Join("/src", "pango", "Makefile.am"),
		job.ManifestPath(Options{SrcRoot: "/src", Subdir: "pango", Base: "/build/win32"}))
}

func TestFormat(t *testing.T) {
	t.Run("default separator", func(t *testing.T) {
		got := Format([]string{"a.c", "sub/b.h"}, Options{SrcRoot: "..", Subdir: "pango"})
		assert.Equal(t, "..\\pango\\a.c\n..\\pango\\sub\\b.h\n", string(got))
	})

	t.Run("custom separator", func(t *testing.T) {
		got := Format([]string{"sub/b.h"}, Options{SrcRoot: "..", Subdir: "pango", Separator: "/"})
		assert.Equal(t, "../pango/sub/b.h\n", string(got))
	})

	t.Run("no entries", func(t *testing.T) {
		assert.Empty(t, Format(nil, Options{}))
	})

	t.Run("base is not part of the prefix", func(t *testing.T) {
		got := Format([]string{"a.c"}, Options{SrcRoot: "..", Subdir: "pango", Base: "/build/win32"})
		assert.Equal(t, "..\\pango\\a.c\n", string(got))
	})
}

func TestGenerate(t *testing.T) {
	opts := setupTree(t)
	outDir := t.TempDir()
	r := manifest.NewResolver()

	dest, err := Generate(r, nil, jobNamed(t, "pango"), opts, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "pango_list"), dest)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)

	prefix := opts.SrcRoot + `\pango\`
	assert.Equal(t, prefix+"break.c\n"+prefix+"pango-layout.c\n"+prefix+"pango-layout.h\n", string(got))

	t.Run("extra output name", func(t *testing.T) {
		withFc := opts
		withFc.Extra = true

		dest, err := Generate(r, nil, jobNamed(t, "pangocairo"), withFc, outDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "pangocairoft_list"), dest)
	})

	t.Run("error names the job", func(t *testing.T) {
		bad := opts
		bad.Subdir = "nope"

		_, err := Generate(r, nil, jobNamed(t, "pangoft"), bad, outDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job pangoft")
		assert.ErrorIs(t, err, manifest.ErrIOFailure)
	})
}

func TestJob_Conds(t *testing.T) {
	job := jobNamed(t, "pangocairo")

	assert.Equal(t, manifest.Conditions{"HAVE_CAIRO_WIN32": true, "PLATFORM_WIN32": true}, job.Conds(false))
	assert.True(t, job.Conds(true)["HAVE_CAIRO_FREETYPE"])
	assert.NotContains(t, job.Conditions, "HAVE_CAIRO_FREETYPE", "job conditions are not mutated")
}

func TestVariants(t *testing.T) {
	cairo := jobNamed(t, "pangocairo")
	pango := jobNamed(t, "pango")

	assert.Equal(t, []bool{false, true}, Variants(cairo, false, false))
	assert.Equal(t, []bool{true}, Variants(cairo, true, true))
	assert.Equal(t, []bool{false}, Variants(cairo, false, true))
	assert.Equal(t, []bool{false}, Variants(pango, false, false))
}
