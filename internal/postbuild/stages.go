package postbuild

import "context"

// StageName is a strongly-typed identifier for a pipeline stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageRemoveUnwanted StageName = "remove_unwanted"
	StageFlattenModules StageName = "flatten_modules"
	StageCapitalizeDirs StageName = "capitalize_dirs"
	StagePruneEmpty     StageName = "prune_empty"
	StageExportLinks    StageName = "export_links"
	StageRewriteLinks   StageName = "rewrite_links"
	StageAuditLinks     StageName = "audit_links"
)

// Stage executes one step against the shared run state.
type Stage func(ctx context.Context, rs *runState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
	// Enabled, when set, decides per run whether the stage executes.
	Enabled func(rs *runState) bool
}

// runState is threaded through the stages. Substitutions recorded by the
// flatten and capitalize stages are consumed by the rewrite and audit stages.
type runState struct {
	proc     *Processor
	recorded Substitutions
	result   *Result
}

func defaultStages() []StageDef {
	return []StageDef{
		{Name: StageRemoveUnwanted, Fn: stageRemoveUnwanted},
		{Name: StageFlattenModules, Fn: stageFlattenModules},
		{Name: StageCapitalizeDirs, Fn: stageCapitalizeDirs},
		{Name: StagePruneEmpty, Fn: stagePruneEmpty},
		{Name: StageExportLinks, Fn: stageExportLinks},
		{Name: StageRewriteLinks, Fn: stageRewriteLinks},
		{Name: StageAuditLinks, Fn: stageAuditLinks, Enabled: func(rs *runState) bool {
			return rs.proc.cfg.Audit.IsEnabled()
		}},
	}
}

func stageRemoveUnwanted(_ context.Context, rs *runState) error {
	removed, err := rs.proc.RemoveUnwanted()
	rs.result.Removed = removed
	return err
}

func stageFlattenModules(_ context.Context, rs *runState) error {
	res, err := rs.proc.FlattenModules()
	if res != nil {
		rs.recorded = rs.recorded.Concat(res.Substitutions)
		rs.result.Moves = res.Moves
		rs.result.IndexRenames = res.IndexRenames
	}
	return err
}

func stageCapitalizeDirs(_ context.Context, rs *runState) error {
	res, err := rs.proc.CapitalizeDirs()
	if res != nil {
		rs.recorded = rs.recorded.Concat(res.Substitutions)
		rs.result.Capitalized = res.Renames
	}
	return err
}

func stagePruneEmpty(_ context.Context, rs *runState) error {
	pruned, err := rs.proc.PruneEmptyDirs()
	rs.result.Pruned = pruned
	return err
}

func stageExportLinks(_ context.Context, rs *runState) error {
	root, err := rs.proc.ExportManifest()
	if err != nil {
		return err
	}
	rs.result.ManifestPath = rs.proc.cfg.LinksOutput
	rs.result.ManifestEntries = root.Count()
	return nil
}

func stageRewriteLinks(ctx context.Context, rs *runState) error {
	subs := rs.recorded.Concat(LinkCleanups(rs.proc.cfg.KindDirs), extraSubstitutions(rs.proc))
	rs.result.Substitutions = subs
	files, err := rs.proc.RewriteLinks(ctx, subs)
	rs.result.Files = files
	return err
}

func stageAuditLinks(_ context.Context, rs *runState) error {
	findings, err := rs.proc.AuditLinks(rs.recorded)
	rs.result.Findings = findings
	if err != nil {
		return err
	}
	if len(findings) > 0 && rs.proc.cfg.Audit.FailOnFindings {
		return auditFailure(len(findings))
	}
	return nil
}

func extraSubstitutions(p *Processor) Substitutions {
	var extra Substitutions
	for _, s := range p.cfg.ExtraSubstitutions {
		extra.Add(s.Pattern, s.Replacement)
	}
	return extra
}
