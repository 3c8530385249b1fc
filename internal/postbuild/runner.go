package postbuild

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/config"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/metrics"
	"github.com/google/uuid"
)

// Runner executes the post-build stages in order.
type Runner struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger
	stages   []StageDef
	runID    string
	now      func() time.Time
}

// NewRunner creates a runner with a fresh run id, the default logger and no metrics.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		stages:   defaultStages(),
		runID:    uuid.NewString(),
		now:      time.Now,
	}
}

// WithRecorder sets the metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithLogger sets the base logger; the run id is attached to every record.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// RunID returns the identifier attached to logs and the report.
func (r *Runner) RunID() string {
	return r.runID
}

// Run executes every enabled stage. It stops at the first failing stage; work
// already done on disk is not rolled back. The returned Result is never nil.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := r.logger.With(logfields.RunID(r.runID))
	proc := NewProcessor(r.cfg, log)
	start := r.now()

	rs := &runState{
		proc: proc,
		result: &Result{
			RunID:     r.runID,
			APIRoot:   proc.APIRoot(),
			StartedAt: start,
		},
	}

	log.Info("Cleaning up API docs", logfields.Path(proc.APIRoot()))

	err := proc.checkAPIRoot()
	if err == nil {
		err = r.runStages(ctx, rs, log)
	}

	elapsed := r.now().Sub(start)
	rs.result.DurationMS = float64(elapsed.Milliseconds())
	r.recorder.ObserveRunDuration(elapsed)
	r.recordCounts(rs.result)

	if err != nil {
		outcome := metrics.ResultFailed
		if ctx.Err() != nil {
			outcome = metrics.ResultCanceled
		}
		r.recorder.IncRunOutcome(outcome)
		return rs.result, err
	}

	r.recorder.IncRunOutcome(metrics.ResultSuccess)
	log.Info("API docs post-build complete",
		logfields.DurationMS(rs.result.DurationMS),
		slog.Int("moved", len(rs.result.Moves)),
		slog.Int("pruned", len(rs.result.Pruned)),
		slog.Int("rewritten", rs.result.RewrittenCount()),
		slog.Int("findings", len(rs.result.Findings)))
	return rs.result, nil
}

func (r *Runner) runStages(ctx context.Context, rs *runState, log *slog.Logger) error {
	for _, st := range r.stages {
		if err := ctx.Err(); err != nil {
			r.recordStage(rs, st.Name, metrics.ResultCanceled, 0, err)
			return errors.WrapError(err, errors.CategoryRuntime, "post-build canceled").
				WithContext("stage", string(st.Name)).
				Build()
		}
		if st.Enabled != nil && !st.Enabled(rs) {
			log.Debug("Stage skipped", logfields.Stage(string(st.Name)))
			r.recordStage(rs, st.Name, metrics.ResultSkipped, 0, nil)
			continue
		}

		t0 := r.now()
		err := st.Fn(ctx, rs)
		d := r.now().Sub(t0)
		r.recorder.ObserveStageDuration(string(st.Name), d)

		if err != nil {
			result := metrics.ResultFailed
			if ctx.Err() != nil && !errors.IsClassified(err) {
				result = metrics.ResultCanceled
				err = errors.WrapError(err, errors.CategoryRuntime, "post-build canceled").
					WithContext("stage", string(st.Name)).
					Build()
			}
			r.recordStage(rs, st.Name, result, d, err)
			log.Error("Stage failed", logfields.Stage(string(st.Name)), logfields.Error(err))
			return err
		}
		r.recordStage(rs, st.Name, metrics.ResultSuccess, d, nil)
		log.Info("Stage complete", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(d.Microseconds())/1000))
	}
	return nil
}

func (r *Runner) recordStage(rs *runState, name StageName, result metrics.ResultLabel, d time.Duration, err error) {
	r.recorder.IncStageResult(string(name), result)
	sr := StageResult{Name: name, Result: result, DurationMS: float64(d.Microseconds()) / 1000}
	if err != nil {
		sr.Error = err.Error()
	}
	rs.result.Stages = append(rs.result.Stages, sr)
}

func (r *Runner) recordCounts(res *Result) {
	r.recorder.AddCount(metrics.CounterPathsRemoved, len(res.Removed))
	r.recorder.AddCount(metrics.CounterFilesMoved, len(res.Moves))
	r.recorder.AddCount(metrics.CounterIndexFilesRenamed, len(res.IndexRenames))
	r.recorder.AddCount(metrics.CounterDirsCapitalized, len(res.Capitalized))
	r.recorder.AddCount(metrics.CounterDirsPruned, len(res.Pruned))
	r.recorder.AddCount(metrics.CounterManifestEntries, res.ManifestEntries)
	r.recorder.AddCount(metrics.CounterFilesRewritten, res.RewrittenCount())
	r.recorder.AddCount(metrics.CounterAuditFindings, len(res.Findings))
}

// ExportManifest writes the link manifest for an already processed tree.
func ExportManifest(cfg *config.Config, logger *slog.Logger) (*Link, error) {
	proc := NewProcessor(cfg, logger)
	if err := proc.checkAPIRoot(); err != nil {
		return nil, err
	}
	return proc.ExportManifest()
}
