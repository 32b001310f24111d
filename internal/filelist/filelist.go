// Package filelist emits introspection file lists from resolved manifests.
//
// Each Job resolves a handful of variables holding space separated source
// and header names, drops excluded entries and writes one path per line,
// prefixed with the source root and subdirectory and using a platform path
// separator.
package filelist

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cameronsjo/amvars/internal/fileutil"
	"github.com/cameronsjo/amvars/internal/manifest"
)

// DefaultSeparator is the path separator used in emitted lists.
const DefaultSeparator = `\`

// Exclude selects entries to drop from a list.
type Exclude struct {
	// Suffixes drops entries ending in any of these strings.
	Suffixes []string `yaml:"suffixes,omitempty"`

	// Names drops entries equal to any of these strings.
	Names []string `yaml:"names,omitempty"`
}

// Match reports whether entry is excluded.
func (e Exclude) Match(entry string) bool {
	if slices.Contains(e.Names, entry) {
		return true
	}
	for _, suffix := range e.Suffixes {
		if strings.HasSuffix(entry, suffix) {
			return true
		}
	}
	return false
}

// Job describes one emitted list.
type Job struct {
	// Name identifies the job on the command line and in logs.
	Name string `yaml:"name"`

	// Manifest is the manifest path relative to the source directory.
	Manifest string `yaml:"manifest"`

	// Variables are the names whose values make up the list, in order.
	Variables []string `yaml:"variables"`

	// Conditions are always applied.
	Conditions map[string]bool `yaml:"conditions,omitempty"`

	// ExtraConditions are applied on top of Conditions when the fontconfig
	// toggle is set.
	ExtraConditions map[string]bool `yaml:"extra_conditions,omitempty"`

	Exclude Exclude `yaml:"exclude,omitempty"`

	// Output is the list file name, relative to the output directory.
	Output string `yaml:"output"`

	// ExtraOutput replaces Output when the toggle is set. Jobs without it
	// ignore the toggle entirely.
	ExtraOutput string `yaml:"extra_output,omitempty"`
}

// Options are shared by every job of a run.
type Options struct {
	// SrcRoot and Subdir locate the manifest and prefix every entry.
	SrcRoot string
	Subdir  string

	// Base is the directory a relative SrcRoot is read from. Empty means
	// the working directory. It never appears in the emitted lists.
	Base string

	// Separator joins the prefix and replaces '/' in entries.
	Separator string

	// Vars seeds every resolution.
	Vars manifest.Variables

	// Extra applies each job's ExtraConditions.
	Extra bool
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

// ManifestPath returns the on-disk path of the job's manifest.
func (j Job) ManifestPath(opts Options) string {
	root := opts.SrcRoot
	if opts.Base != "" && !filepath.IsAbs(root) {
		root = filepath.Join(opts.Base, root)
	}
	return filepath.Join(root, opts.Subdir, j.Manifest)
}

// Conds returns the condition map for the given toggle state.
func (j Job) Conds(extra bool) manifest.Conditions {
	conds := make(manifest.Conditions, len(j.Conditions)+len(j.ExtraConditions))
	maps.Copy(conds, j.Conditions)
	if extra {
		maps.Copy(conds, j.ExtraConditions)
	}
	return conds
}

// OutputName returns the list file name for the given toggle state.
func (j Job) OutputName(extra bool) string {
	if extra && j.ExtraOutput != "" {
		return j.ExtraOutput
	}
	return j.Output
}

// Sources resolves the job's variables and returns the retained entries.
func Sources(r *manifest.Resolver, job Job, opts Options) ([]string, error) {
	vars, err := r.Resolve(job.ManifestPath(opts), opts.Vars, job.Conds(opts.Extra), job.Variables...)
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, name := range job.Variables {
		for _, entry := range vars.Fields(name) {
			if job.Exclude.Match(entry) {
				continue
			}
			sources = append(sources, entry)
		}
	}

	return sources, nil
}

// Format renders entries one per line as srcroot SEP subdir SEP entry, with
// '/' in entries replaced by the separator.
func Format(entries []string, opts Options) []byte {
	sep := opts.separator()
	prefix := opts.SrcRoot + sep + opts.Subdir + sep

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(prefix)
		sb.WriteString(strings.ReplaceAll(entry, "/", sep))
		sb.WriteByte('\n')
	}

	return []byte(sb.String())
}

// Generate resolves job and writes its list into outDir. It returns the
// written path.
func Generate(r *manifest.Resolver, logger *slog.Logger, job Job, opts Options, outDir string) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sources, err := Sources(r, job, opts)
	if err != nil {
		return "", fmt.Errorf("job %s: %w", job.Name, err)
	}

	dest := filepath.Join(outDir, job.OutputName(opts.Extra))
	if err := fileutil.WriteFile(dest, Format(sources, opts), 0644); err != nil {
		return "", fmt.Errorf("job %s: write %s: %w", job.Name, dest, err)
	}

	logger.Debug("wrote file list",
		slog.String("job", job.Name),
		slog.String("output", dest),
		slog.Int("entries", len(sources)),
	)

	return dest, nil
}
