package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/config"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/metrics"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/postbuild"
)

// RunCmd implements the 'run' command, the default when none is given.
type RunCmd struct {
	DocsDir         string `name:"docs-dir" help:"Documentation source root (overrides docs_dir)"`
	APIDir          string `name:"api-dir" help:"API directory relative to the docs root (overrides api_dir)"`
	LinksOutput     string `name:"links-output" help:"Manifest output path (overrides links_output)"`
	Report          string `name:"report" help:"Write a JSON run report to this path (overrides report.path)"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics in textfile format (overrides metrics.textfile)"`
	SkipAudit       bool   `name:"skip-audit" help:"Skip the residual-link audit"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	r.apply(cfg)
	if err := validateOverrides(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return RunPostBuild(ctx, g, cfg)
}

func (r *RunCmd) apply(cfg *config.Config) {
	applyPathOverrides(cfg, r.DocsDir, r.APIDir, r.LinksOutput)
	if r.Report != "" {
		cfg.Report.Path = r.Report
	}
	if r.MetricsTextfile != "" {
		cfg.Metrics.Textfile = r.MetricsTextfile
	}
	if r.SkipAudit {
		disabled := false
		cfg.Audit.Enabled = &disabled
	}
}

// RunPostBuild executes the pipeline and writes the optional report and
// metrics textfile. Both are written even when a stage fails.
func RunPostBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	runner := postbuild.NewRunner(cfg).WithLogger(g.Logger)

	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		runner.WithRecorder(prom)
	}

	result, runErr := runner.Run(ctx)

	if cfg.Report.Path != "" {
		if err := postbuild.WriteReport(cfg.Report.Path, result); err != nil {
			g.Logger.Warn("Failed to write run report", logfields.Path(cfg.Report.Path), logfields.Error(err))
		} else {
			g.Logger.Info("Run report written", logfields.Path(cfg.Report.Path))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	_, _ = fmt.Fprintf(g.Out, "Post-build complete: %d pages moved, %d files rewritten, %d sidebar entries\n",
		len(result.Moves), result.RewrittenCount(), result.ManifestEntries)
	if n := len(result.Findings); n > 0 {
		_, _ = fmt.Fprintf(g.Out, "%d links still point at removed locations (see log)\n", n)
	}
	return nil
}

func applyPathOverrides(cfg *config.Config, docsDir, apiDir, linksOutput string) {
	if docsDir != "" {
		cfg.DocsDir = docsDir
	}
	if apiDir != "" {
		cfg.APIDir = apiDir
	}
	if linksOutput != "" {
		cfg.LinksOutput = linksOutput
	}
}

// validateOverrides re-validates after flags changed the loaded configuration.
func validateOverrides(cfg *config.Config) error {
	return config.Validate(cfg)
}
