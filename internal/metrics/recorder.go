package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultSkipped  ResultLabel = "skipped"
	ResultCanceled ResultLabel = "canceled"
)

// Counter names for tree mutations performed by the pipeline.
const (
	CounterPathsRemoved      = "paths_removed"
	CounterFilesMoved        = "files_moved"
	CounterIndexFilesRenamed = "index_files_renamed"
	CounterDirsCapitalized   = "dirs_capitalized"
	CounterDirsPruned        = "dirs_pruned"
	CounterManifestEntries   = "manifest_entries"
	CounterFilesRewritten    = "files_rewritten"
	CounterAuditFindings     = "audit_findings"
)

// Recorder defines observability hooks for a post-build run.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome ResultLabel)
	AddCount(counter string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                  {}
func (NoopRecorder) AddCount(string, int)                       {}
