package commands

import (
	"fmt"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/postbuild"
)

// ManifestCmd implements the 'manifest' command.
type ManifestCmd struct {
	DocsDir     string `name:"docs-dir" help:"Documentation source root (overrides docs_dir)"`
	APIDir      string `name:"api-dir" help:"API directory relative to the docs root (overrides api_dir)"`
	LinksOutput string `name:"links-output" help:"Manifest output path (overrides links_output)"`
}

func (m *ManifestCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	applyPathOverrides(cfg, m.DocsDir, m.APIDir, m.LinksOutput)
	if err := validateOverrides(cfg); err != nil {
		return err
	}

	link, err := postbuild.ExportManifest(cfg, g.Logger)
	if err != nil {
		return err
	}
	g.Logger.Info("Link manifest written", logfields.Path(cfg.LinksOutput), logfields.Count(link.Count()))
	_, _ = fmt.Fprintf(g.Out, "Wrote %d sidebar entries to %s\n", link.Count(), cfg.LinksOutput)
	return nil
}
