package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-raven/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// DefaultFileName is the project configuration file looked up in the project directory.
const DefaultFileName = "raven.yaml"

// Default values written by `raven init` and used for omitted keys.
const (
	DefaultSourceDir       = "src"
	DefaultDestDir         = "dest"
	DefaultSyntaxesDir     = "syntaxes"
	DefaultSyntaxTheme     = "base16-eighties.dark"
	DefaultCustomThemesDir = "syntax-themes"
	DefaultFavicon         = "favicon.ico"
	DefaultStylesheet      = "style.css"
	DefaultTemplate        = "template.html"
	DefaultTitleSeparator  = " | "
	MaxWorkers             = 1024
)

// Config holds all configuration for a site build. Paths are relative to the
// project directory unless absolute.
type Config struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`

	// Syntaxes holds chroma XML lexer definitions added to the builtin set.
	Syntaxes string `yaml:"syntaxes"`

	// SyntaxTheme names a builtin or custom theme.
	SyntaxTheme string `yaml:"syntax_theme"`

	// CustomSyntaxThemes holds chroma XML style definitions.
	CustomSyntaxThemes string `yaml:"custom_syntax_themes"`

	Defaults   DefaultsConfig    `yaml:"default"`
	Generation *GenerationConfig `yaml:"generation,omitempty"`
	Meta       *MetaConfig       `yaml:"meta,omitempty"`
}

// DefaultsConfig holds project-wide assets used when a page does not override them.
type DefaultsConfig struct {
	Favicon    string    `yaml:"favicon"`
	Stylesheet string    `yaml:"stylesheet"`
	Template   string    `yaml:"template"`
	Meta       *SiteMeta `yaml:"meta,omitempty"`
}

// SiteMeta describes the site a page belongs to.
type SiteMeta struct {
	SiteName string   `yaml:"site_name"`
	Authors  []string `yaml:"authors"`
}

// GenerationConfig tunes how pages are produced.
type GenerationConfig struct {
	Process *ProcessConfig `yaml:"process,omitempty"`

	// TreatSourceAsTemplate substitutes markers in .html sources.
	TreatSourceAsTemplate bool `yaml:"treat_source_as_template"`

	// Workers bounds concurrency; 0 runs one goroutine per file.
	Workers int `yaml:"workers"`

	// HighlightClasses renders code with CSS classes instead of inline styles.
	HighlightClasses bool `yaml:"highlight_classes"`

	// RewriteLinks points relative links to .md sources at the generated pages.
	RewriteLinks bool `yaml:"rewrite_links"`
}

// ProcessConfig defines post-processing of generated HTML.
type ProcessConfig struct {
	Minify bool `yaml:"minify"`
}

// MetaConfig defines title augmentation.
type MetaConfig struct {
	AppendSiteNameToTitle bool   `yaml:"append_site_name_to_title"`
	TitleSeparator        string `yaml:"title_separator"`
}

// DefaultConfig returns the configuration a freshly initialized project uses.
func DefaultConfig() *Config {
	return &Config{
		Source:             DefaultSourceDir,
		Dest:               DefaultDestDir,
		Syntaxes:           DefaultSyntaxesDir,
		SyntaxTheme:        DefaultSyntaxTheme,
		CustomSyntaxThemes: DefaultCustomThemesDir,
		Defaults: DefaultsConfig{
			Favicon:    DefaultFavicon,
			Stylesheet: DefaultStylesheet,
			Template:   DefaultTemplate,
		},
	}
}

// Minify reports whether generated HTML should be minified.
func (c *Config) Minify() bool {
	return c.Generation != nil && c.Generation.Process != nil && c.Generation.Process.Minify
}

// TreatSourceAsTemplate reports whether .html sources get marker substitution.
func (c *Config) TreatSourceAsTemplate() bool {
	return c.Generation != nil && c.Generation.TreatSourceAsTemplate
}

// Workers returns the concurrency bound; 0 means unbounded.
func (c *Config) Workers() int {
	if c.Generation == nil {
		return 0
	}
	return c.Generation.Workers
}

// HighlightClasses reports whether code blocks use CSS classes.
func (c *Config) HighlightClasses() bool {
	return c.Generation != nil && c.Generation.HighlightClasses
}

// RewriteLinks reports whether links to markdown sources are rewritten.
func (c *Config) RewriteLinks() bool {
	return c.Generation != nil && c.Generation.RewriteLinks
}

// TitleSuffix returns the text appended to every page title for the given
// site name, or "" when title augmentation is off.
func (c *Config) TitleSuffix(siteName string) string {
	if c.Meta == nil || !c.Meta.AppendSiteNameToTitle || siteName == "" {
		return ""
	}
	sep := c.Meta.TitleSeparator
	if sep == "" {
		sep = DefaultTitleSeparator
	}
	return sep + siteName
}

// Validate checks the configuration for values no build could succeed with.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"source", c.Source},
		{"dest", c.Dest},
		{"syntax_theme", c.SyntaxTheme},
		{"default.favicon", c.Defaults.Favicon},
		{"default.stylesheet", c.Defaults.Stylesheet},
		{"default.template", c.Defaults.Template},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.field)
		}
	}

	if filepath.Clean(c.Source) == filepath.Clean(c.Dest) {
		return fmt.Errorf("%w: source and dest must differ (%q)", ErrInvalidConfig, c.Source)
	}

	if w := c.Workers(); w < 0 || w > MaxWorkers {
		return fmt.Errorf("%w: generation.workers must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, w)
	}

	return nil
}

// LoadConfig reads and validates the configuration at path. Keys omitted from
// the file keep their DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal serializes cfg as written by `raven init`.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}
