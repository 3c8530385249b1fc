package config

// Defaults matching the directory layout typedoc-plugin-markdown produces.
const (
	DefaultDocsDir      = "./src"
	DefaultAPIDir       = "api"
	DefaultLinksOutput  = ".typedoc/api-links.json"
	DefaultLinkBase     = "/api/"
	DefaultLinkRootText = "API"
	DefaultIndexFile    = "index.md"
)

// DefaultRemovePaths lists generator leftovers deleted before restructuring.
// Paths are relative to DocsDir.
func DefaultRemovePaths() []string {
	return []string{"api/_media"}
}

// DefaultKindDirs lists the per-kind subdirectories flattened into their package.
func DefaultKindDirs() []string {
	return []string{"classes", "interfaces", "enumerations"}
}

// DefaultSecondaryEntryPoints lists file name suffixes of alternate package
// entry points that are kept out of the sidebar.
func DefaultSecondaryEntryPoints() []string {
	return []string{"-index.md", "-test_utils.md", "-cli_utils.md"}
}

// ApplyDefaults fills every unset field. Explicitly empty lists stay empty only
// when the YAML set them to [] (a nil slice is treated as unset).
func ApplyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
	if cfg.APIDir == "" {
		cfg.APIDir = DefaultAPIDir
	}
	if cfg.LinksOutput == "" {
		cfg.LinksOutput = DefaultLinksOutput
	}
	if cfg.LinkBase == "" {
		cfg.LinkBase = DefaultLinkBase
	}
	if cfg.LinkRootText == "" {
		cfg.LinkRootText = DefaultLinkRootText
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = DefaultIndexFile
	}
	if cfg.RemovePaths == nil {
		cfg.RemovePaths = DefaultRemovePaths()
	}
	if cfg.KindDirs == nil {
		cfg.KindDirs = DefaultKindDirs()
	}
	if cfg.SecondaryEntryPoints == nil {
		cfg.SecondaryEntryPoints = DefaultSecondaryEntryPoints()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
