package postbuild

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/metrics"
)

// StageResult records the outcome of a single stage.
type StageResult struct {
	Name       StageName           `json:"name"`
	Result     metrics.ResultLabel `json:"result"`
	DurationMS float64             `json:"duration_ms"`
	Error      string              `json:"error,omitempty"`
}

// Result summarizes a run. It is returned even when a stage fails so callers
// can report how far the run got.
type Result struct {
	RunID      string        `json:"run_id"`
	APIRoot    string        `json:"api_root"`
	StartedAt  time.Time     `json:"started_at"`
	DurationMS float64       `json:"duration_ms"`
	Stages     []StageResult `json:"stages"`

	Removed         []string       `json:"removed"`
	Moves           []Move         `json:"moves"`
	IndexRenames    []Move         `json:"index_renames"`
	Capitalized     []Move         `json:"capitalized"`
	Pruned          []string       `json:"pruned"`
	ManifestPath    string         `json:"manifest_path,omitempty"`
	ManifestEntries int            `json:"manifest_entries"`
	Substitutions   Substitutions  `json:"substitutions"`
	Files           []FileResult   `json:"files"`
	Findings        []AuditFinding `json:"findings"`
}

// RewrittenCount returns the number of files whose content changed.
func (r *Result) RewrittenCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

// WriteReport writes r as indented JSON to path.
func WriteReport(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode run report").Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError(err, "failed to create report directory", dir).Build()
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.FileSystemError(err, "failed to write run report", path).Build()
	}
	return nil
}

func auditFailure(n int) error {
	return errors.ValidationError("links still point at removed locations").
		WithContext("findings", n).
		Build()
}
