package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetRootCmd resets the root command state for test isolation.
// Flag variables are package globals, so every flag is put back to its
// default and marked unchanged.
func resetRootCmd(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	// Reset args to empty slice (not nil, which would use os.Args)
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	resetFlags(rootCmd.PersistentFlags())
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		c.SetContext(context.TODO())
		resetFlags(c.Flags())
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)

	return buf
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// executeCmd executes the root command with the given args and returns the output.
// This handles proper state reset between test executions.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = oldNoColor })

	buf := resetRootCmd(t)
	// Important: Set args BEFORE executing
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalWd) })

	require.NoError(t, os.Chdir(dir))
}

// writeFile creates path and its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const pangoManifest = `pango_introspection_files = \
	break.c \
	pango-color-table.h \
	pango-impl-utils-private.h \
	pango-layout.h

pangoft2_introspection_files = pangofc-font.c pangoft2-private.h

libpangocairo_1_0_la_SOURCES = pangocairo-context.c
pangocairo_headers = pangocairo.h

if HAVE_CAIRO_WIN32
libpangocairo_1_0_la_SOURCES += pangocairo-win32font.c
endif

if HAVE_CAIRO_FREETYPE
libpangocairo_1_0_la_SOURCES += pangocairo-fcfont.c
endif
`

// setupProject lays out <tmp>/pango/Makefile.am and <tmp>/win32/amvars.yaml
// with the given configuration, switches into win32 and returns the
// symlink-free temp root.
func setupProject(t *testing.T, configYAML string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "pango", "Makefile.am"), pangoManifest)
	writeFile(t, filepath.Join(root, "win32", "amvars.yaml"), configYAML)
	chdir(t, filepath.Join(root, "win32"))

	return root
}
