package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1"

// Config describes where the generated API docs live and the naming
// conventions the post-build pass relies on.
type Config struct {
	Version string `yaml:"version"`

	// DocsDir is the documentation source root; APIDir is relative to it.
	DocsDir string `yaml:"docs_dir"`
	APIDir  string `yaml:"api_dir"`

	// LinksOutput is the sidebar manifest path, relative to the working directory.
	LinksOutput  string `yaml:"links_output"`
	LinkBase     string `yaml:"link_base"`
	LinkRootText string `yaml:"link_root_text"`

	IndexFile            string         `yaml:"index_file"`
	RemovePaths          []string       `yaml:"remove_paths"`
	KindDirs             []string       `yaml:"kind_dirs"`
	SecondaryEntryPoints []string       `yaml:"secondary_entry_points"`
	ExtraSubstitutions   []Substitution `yaml:"extra_substitutions,omitempty"`

	Manifest ManifestConfig `yaml:"manifest"`
	Audit    AuditConfig    `yaml:"audit"`
	Report   ReportConfig   `yaml:"report"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Substitution is a user supplied literal find/replace pair appended after the
// built-in link cleanups.
type Substitution struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// ManifestConfig controls link manifest serialization.
type ManifestConfig struct {
	Indent bool `yaml:"indent"`
}

// AuditConfig controls the residual-link audit that runs after rewriting.
type AuditConfig struct {
	Enabled        *bool `yaml:"enabled,omitempty"`
	FailOnFindings bool  `yaml:"fail_on_findings"`
}

// IsEnabled reports whether the audit should run (default true).
func (a AuditConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// ReportConfig controls the optional JSON run report.
type ReportConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig controls the optional Prometheus textfile output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// APIRoot returns the directory the pipeline mutates.
func (c *Config) APIRoot() string {
	return filepath.Join(c.DocsDir, c.APIDir)
}

// Load reads configPath, applies defaults and validates the result.
//
// When allowMissing is set a missing file is not an error and the defaults are
// used instead, which is the common case for projects that keep the
// conventional typedoc layout.
func Load(configPath string, allowMissing bool) (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
	case os.IsNotExist(err) && allowMissing:
	case os.IsNotExist(err):
		return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
			WithContext("path", configPath).
			Build()
	default:
		return nil, errors.FileSystemError(err, "failed to read configuration", configPath).Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("path", configPath).
			Build()
	}

	Normalize(cfg)
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode expands ${VAR} references and strictly unmarshals the YAML document.
func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if strings.TrimSpace(expanded) == "" {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryValidation, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError(err, "failed to create configuration directory", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.FileSystemError(err, "failed to write configuration", configPath).Build()
	}
	return nil
}
