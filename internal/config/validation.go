package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
)

// Validate checks that a defaulted configuration can drive the pipeline safely.
func Validate(cfg *Config) error {
	checks := []func(*Config) error{
		validateRequired,
		validatePaths,
		validateKindDirs,
		validateLinkBase,
		validateSubstitutions,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateRequired(cfg *Config) error {
	required := map[string]string{
		"docs_dir":     cfg.DocsDir,
		"api_dir":      cfg.APIDir,
		"index_file":   cfg.IndexFile,
		"links_output": cfg.LinksOutput,
	}
	for _, field := range []string{"docs_dir", "api_dir", "index_file", "links_output"} {
		if strings.TrimSpace(required[field]) == "" {
			return invalid(field, "must not be empty")
		}
	}
	if strings.ContainsAny(cfg.IndexFile, `/\`) {
		return invalid("index_file", "must be a bare file name")
	}
	return nil
}

func validatePaths(cfg *Config) error {
	if filepath.IsAbs(cfg.APIDir) || escapes(cfg.APIDir) {
		return invalid("api_dir", "must be a relative path inside docs_dir")
	}
	if filepath.Clean(cfg.APIDir) == "." {
		return invalid("api_dir", "must not be the docs root itself")
	}
	for _, p := range cfg.RemovePaths {
		if p == "" || filepath.IsAbs(p) || escapes(p) || filepath.Clean(p) == "." {
			return invalid("remove_paths", fmt.Sprintf("%q must be a relative path inside docs_dir", p))
		}
	}
	return nil
}

func validateKindDirs(cfg *Config) error {
	seen := make(map[string]struct{}, len(cfg.KindDirs))
	for _, k := range cfg.KindDirs {
		if k == "" || k == "." || k == ".." || strings.ContainsAny(k, `/\`) {
			return invalid("kind_dirs", fmt.Sprintf("%q must be a plain directory name", k))
		}
		if _, dup := seen[k]; dup {
			return invalid("kind_dirs", fmt.Sprintf("%q listed twice", k))
		}
		seen[k] = struct{}{}
	}
	for _, ep := range cfg.SecondaryEntryPoints {
		if strings.TrimSpace(ep) == "" {
			return invalid("secondary_entry_points", "entries must not be empty")
		}
	}
	return nil
}

func validateLinkBase(cfg *Config) error {
	if !strings.HasPrefix(cfg.LinkBase, "/") || !strings.HasSuffix(cfg.LinkBase, "/") {
		return invalid("link_base", fmt.Sprintf("%q must start and end with '/'", cfg.LinkBase))
	}
	return nil
}

func validateSubstitutions(cfg *Config) error {
	for i, s := range cfg.ExtraSubstitutions {
		if s.Pattern == "" {
			return invalid("extra_substitutions", fmt.Sprintf("entry %d has an empty pattern", i))
		}
	}
	return nil
}

// escapes reports whether a relative path climbs above its base.
func escapes(p string) bool {
	clean := filepath.ToSlash(filepath.Clean(p))
	return clean == ".." || strings.HasPrefix(clean, "../")
}

func invalid(field, reason string) error {
	return errors.ValidationError("invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason).
		Build()
}
