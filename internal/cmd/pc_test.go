package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pcTemplate = "prefix=@prefix@\nVersion: @VERSION@\nLibs: -lpango-@PANGO_API_VERSION@\n"

const pcConfig = `values:
  prefix: c:/vs/x64
  VERSION: 1.44.7
  PANGO_API_VERSION: "1.0"
templates:
  - input: pango.pc.in
  - input: pangowin32.pc.in
    output: out/pangowin32.pc
`

func TestPCCmd(t *testing.T) {
	t.Run("renders configured templates", func(t *testing.T) {
		root := setupProject(t, pcConfig)
		win32 := filepath.Join(root, "win32")
		writeFile(t, filepath.Join(win32, "pango.pc.in"), pcTemplate)
		writeFile(t, filepath.Join(win32, "pangowin32.pc.in"), "Version: @VERSION@\n")

		output, err := executeCmd(t, "pc")
		require.NoError(t, err)
		assert.Contains(t, output, filepath.Join(win32, "pango.pc"))

		assert.Equal(t, "prefix=c:/vs/x64\nVersion: 1.44.7\nLibs: -lpango-1.0\n",
			readList(t, filepath.Join(win32, "pango.pc")))
		assert.Equal(t, "Version: 1.44.7\n",
			readList(t, filepath.Join(win32, "out", "pangowin32.pc")))
	})

	t.Run("defines override configured values", func(t *testing.T) {
		root := setupProject(t, pcConfig)
		win32 := filepath.Join(root, "win32")
		writeFile(t, filepath.Join(win32, "pango.pc.in"), pcTemplate)

		_, err := executeCmd(t, "pc", "-D", "VERSION=2.0.0", "pango.pc.in", "custom.pc")
		require.NoError(t, err)

		assert.Equal(t, "prefix=c:/vs/x64\nVersion: 2.0.0\nLibs: -lpango-1.0\n",
			readList(t, filepath.Join(win32, "custom.pc")))
	})

	t.Run("output defaults to input without .in", func(t *testing.T) {
		root := setupProject(t, "")
		win32 := filepath.Join(root, "win32")
		writeFile(t, filepath.Join(win32, "pango.pc.in"), pcTemplate)

		_, err := executeCmd(t, "pc", "-D", "prefix=/usr", "pango.pc.in")
		require.NoError(t, err)

		assert.Equal(t, "prefix=/usr\nVersion: @VERSION@\nLibs: -lpango-@PANGO_API_VERSION@\n",
			readList(t, filepath.Join(win32, "pango.pc")))
	})

	t.Run("nothing to render", func(t *testing.T) {
		setupProject(t, "")

		_, err := executeCmd(t, "pc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no templates")
	})

	t.Run("missing template", func(t *testing.T) {
		setupProject(t, "")

		_, err := executeCmd(t, "pc", "missing.pc.in")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read template")
	})
}
