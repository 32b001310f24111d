// Package config handles project discovery and configuration.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/amvars/internal/filelist"
	"github.com/cameronsjo/amvars/internal/manifest"
	"github.com/cameronsjo/amvars/internal/pkgconfig"
)

const (
	// FileName is the project configuration file.
	FileName = "amvars.yaml"

	// EnvPrefix prefixes environment overrides, e.g. AMVARS_SRCROOT.
	EnvPrefix = "AMVARS"

	fileType = "yaml"
)

// Defaults for a project without a configuration file.
const (
	DefaultSrcRoot = ".."
	DefaultSubdir  = "pango"
	DefaultOutDir  = "."
)

// ErrNotFound is returned by FindRoot when no configuration file exists in
// the working directory or any of its parents.
var ErrNotFound = errors.New("project root not found (no " + FileName + ")")

// Config holds the amvars project configuration.
type Config struct {
	// Root is the directory holding the configuration file, or the working
	// directory when there is none. Relative paths are resolved against it.
	Root string `yaml:"-"`

	// File is the configuration file path. Empty when defaults are in use.
	File string `yaml:"-"`

	SrcRoot   string `yaml:"srcroot"`
	Subdir    string `yaml:"subdir"`
	Separator string `yaml:"separator"`
	OutDir    string `yaml:"outdir"`

	// Vars seeds every manifest resolution.
	Vars map[string]string `yaml:"vars,omitempty"`

	Jobs      []filelist.Job       `yaml:"jobs,omitempty"`
	Values    map[string]string    `yaml:"values,omitempty"`
	Templates []pkgconfig.Template `yaml:"templates,omitempty"`
}

// sections are the parts of the file whose map keys are case sensitive.
// Viper folds keys to lower case, so these are decoded with yaml directly.
type sections struct {
	Vars   map[string]string `yaml:"vars"`
	Jobs   []filelist.Job    `yaml:"jobs"`
	Values map[string]string `yaml:"values"`
}

// FindRoot searches upward from the current directory for FileName.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, FileName)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

// Load finds the project root and returns its Config. Without a
// configuration file the defaults apply, rooted at the working directory.
func Load() (*Config, error) {
	root, err := FindRoot()
	if errors.Is(err, ErrNotFound) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		return fromViper(newViper(), wd, ""), nil
	}
	if err != nil {
		return nil, err
	}

	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile reads the configuration at path. The file is checked against the
// embedded schema; environment overrides apply afterwards.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	issues, err := Validate(content)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidError{File: path, Issues: issues}
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var sec sections
	if err := yaml.Unmarshal(content, &sec); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	cfg := fromViper(v, root, path)
	cfg.Vars = sec.Vars
	cfg.Values = sec.Values
	if len(sec.Jobs) > 0 {
		cfg.Jobs = sec.Jobs
	}
	if err := v.UnmarshalKey("templates", &cfg.Templates); err != nil {
		return nil, fmt.Errorf("decode templates in %s: %w", path, err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("srcroot", DefaultSrcRoot)
	v.SetDefault("subdir", DefaultSubdir)
	v.SetDefault("separator", filelist.DefaultSeparator)
	v.SetDefault("outdir", DefaultOutDir)

	return v
}

func fromViper(v *viper.Viper, root, file string) *Config {
	return &Config{
		Root:      root,
		File:      file,
		SrcRoot:   v.GetString("srcroot"),
		Subdir:    v.GetString("subdir"),
		Separator: v.GetString("separator"),
		OutDir:    v.GetString("outdir"),
		Jobs:      filelist.DefaultJobs(),
	}
}

// Path resolves p against Root unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// OutputDir returns the directory file lists are written to.
func (c *Config) OutputDir() string {
	return c.Path(c.OutDir)
}

// FilelistOptions returns the shared options for every configured job.
func (c *Config) FilelistOptions() filelist.Options {
	return filelist.Options{
		SrcRoot:   c.SrcRoot,
		Subdir:    c.Subdir,
		Separator: c.Separator,
		Base:      c.Root,
		Vars:      manifest.Variables(maps.Clone(c.Vars)),
	}
}

// TemplateFiles returns the configured templates with paths resolved.
func (c *Config) TemplateFiles() []pkgconfig.Template {
	out := make([]pkgconfig.Template, 0, len(c.Templates))
	for _, t := range c.Templates {
		resolved := pkgconfig.Template{Input: c.Path(t.Input)}
		if t.Output != "" {
			resolved.Output = c.Path(t.Output)
		}
		out = append(out, resolved)
	}
	return out
}
