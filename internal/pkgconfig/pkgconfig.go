// Package pkgconfig fills in pkg-config descriptor templates.
//
// Templates are plain text files, conventionally named *.pc.in, containing
// @KEY@ tokens. Each token whose key is present in the value map is replaced
// literally; unknown tokens are kept as they are.
package pkgconfig

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/cameronsjo/amvars/internal/fileutil"
)

// Template is one input/output pair.
type Template struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
}

// OutputPath returns Output, or Input without its .in suffix.
func (t Template) OutputPath() string {
	if t.Output != "" {
		return t.Output
	}
	return strings.TrimSuffix(t.Input, ".in")
}

// Token returns the placeholder for key.
func Token(key string) string {
	return "@" + key + "@"
}

// Substitute replaces every @KEY@ token in text with values[KEY].
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}

	// Longest key first, then by name, so the replacement is deterministic.
	keys := slices.SortedFunc(maps.Keys(values), func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), cmp.Compare(a, b))
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, Token(key), values[key])
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// Render substitutes values into the template file at t.Input and writes the
// result to t.OutputPath().
func Render(t Template, values map[string]string) error {
	content, err := os.ReadFile(t.Input)
	if err != nil {
		return fmt.Errorf("read template %s: %w", t.Input, err)
	}

	out := t.OutputPath()
	if out == t.Input {
		return fmt.Errorf("template %s: output would overwrite input", t.Input)
	}

	if err := fileutil.WriteFile(out, []byte(Substitute(string(content), values)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	return nil
}
