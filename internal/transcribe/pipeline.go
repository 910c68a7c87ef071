package transcribe

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"leadmirror/internal/config"
	"leadmirror/internal/ingest"
	"leadmirror/internal/logging"
	"leadmirror/internal/media/audio"
	"leadmirror/internal/services"
	"leadmirror/internal/staging"
)

// Observer receives pipeline telemetry. Implementations must be safe for
// concurrent use; a nil Observer disables telemetry.
type Observer interface {
	ObserveRequest(outcome string, duration time.Duration)
	ObservePass(strategy string, success bool)
}

// MetadataProber extracts audio characteristics for quality scoring.
type MetadataProber func(ctx context.Context, path string) audio.Metadata

// Pipeline consolidates upload validation, best-effort optimization, the
// multi-pass transcription fan-out, selection, and quality scoring into a
// single Process call with guaranteed workspace cleanup.
type Pipeline struct {
	client     Transcriber
	stagingDir string
	passCfg    PassConfig
	confCfg    ConfidenceConfig
	optimizer  *audio.Optimizer
	probe      MetadataProber
	logger     *slog.Logger
	observer   Observer
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver sets the telemetry sink.
func WithObserver(observer Observer) Option {
	return func(p *Pipeline) { p.observer = observer }
}

// WithOptimizer replaces the default ffmpeg-backed optimizer (for testing).
func WithOptimizer(optimizer *audio.Optimizer) Option {
	return func(p *Pipeline) {
		if optimizer != nil {
			p.optimizer = optimizer
		}
	}
}

// WithMetadataProber replaces the default ffprobe-backed prober (for testing).
func WithMetadataProber(probe MetadataProber) Option {
	return func(p *Pipeline) {
		if probe != nil {
			p.probe = probe
		}
	}
}

// New assembles a pipeline from configuration. The transcription client is
// injected so serving code and tests share the same construction path.
func New(cfg *config.Config, client Transcriber, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:     client,
		stagingDir: cfg.Paths.StagingDir,
		passCfg: PassConfig{
			Language:     cfg.Transcriber.Language,
			DomainPrompt: cfg.Transcriber.DomainPrompt,
		},
		confCfg: ConfidenceConfig{
			Offset:  cfg.Scoring.ConfidenceOffset,
			Floor:   cfg.Scoring.ConfidenceFloor,
			Default: cfg.Scoring.ConfidenceDefault,
		},
		optimizer: audio.NewOptimizer(cfg.FFmpegBinary(), cfg.Optimizer.Enabled),
		logger:    logging.NewNop(),
	}
	ffprobeBinary := cfg.FFprobeBinary()
	p.probe = func(ctx context.Context, path string) audio.Metadata {
		return audio.ProbeMetadata(ctx, ffprobeBinary, path)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full consolidation pipeline on one upload. declaredName is
// the client-supplied filename used for format checks; path is where the bytes
// actually live. The caller retains ownership of the upload file; the pipeline
// owns (and always removes) its hash-named workspace.
func (p *Pipeline) Process(ctx context.Context, path, declaredName string) (*Result, error) {
	start := time.Now()
	result, err := p.process(ctx, path, declaredName, start)

	if p.observer != nil {
		outcome := "success"
		switch {
		case err != nil:
			outcome = "error"
		case result != nil && len(result.Metadata.Degradations) > 0:
			outcome = "degraded"
		}
		p.observer.ObserveRequest(outcome, time.Since(start))
	}
	return result, err
}

func (p *Pipeline) process(ctx context.Context, path, declaredName string, start time.Time) (*Result, error) {
	ctx = services.WithStage(ctx, "validate")
	report, err := ingest.Validate(path, declaredName)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "validate", "stat upload", "", err)
	}
	if !report.OK {
		return nil, services.Wrap(services.ErrValidation, "validate", "",
			strings.Join(report.Issues, "; "), nil)
	}

	ctx = services.WithAssetHash(ctx, report.Hash)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("upload accepted",
		logging.Int64("size_bytes", report.SizeBytes),
		logging.String("format", strings.TrimPrefix(report.Extension, ".")),
		logging.String(logging.FieldEventType, "upload_accepted"),
	)

	workspace, err := staging.NewWorkspace(p.stagingDir, report.Hash)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "staging", "create workspace", "", err)
	}
	defer func() {
		if removeErr := workspace.Remove(); removeErr != nil {
			logging.WarnWithContext(logger, "workspace cleanup failed", "workspace_cleanup_failed",
				logging.String("dir", workspace.Dir),
				logging.Error(services.Wrap(services.ErrCleanup, "staging", "remove workspace", "", removeErr)),
				logging.String(logging.FieldErrorHint, "remove the directory manually or wait for the stale sweep"),
				logging.String(logging.FieldImpact, "staging disk space not reclaimed"),
			)
		}
	}()

	var degradations []string

	ctx = services.WithStage(ctx, "optimize")
	optimized, err := p.optimizer.Optimize(ctx, path, report.Hash, workspace.Dir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrOptimization, "optimize", "prepare audio", "", err)
	}
	if optimized.Degraded {
		degradations = append(degradations, "optimization skipped: "+optimized.Reason)
		logging.WarnWithContext(logger, "audio optimization unavailable", "optimization_degraded",
			logging.String("reason", optimized.Reason),
			logging.String(logging.FieldErrorHint, "install ffmpeg to enable resampling"),
			logging.String(logging.FieldImpact, "transcribing the unmodified upload"),
		)
	}

	meta := p.probe(ctx, path)
	quality := ScoreQuality(meta)

	ctx = services.WithStage(ctx, "transcribe")
	outcomes := RunPasses(ctx, p.client, optimized.Path, p.passCfg)
	if p.observer != nil {
		for _, outcome := range outcomes {
			p.observer.ObservePass(string(outcome.Strategy), outcome.Err == nil)
		}
	}

	candidates := Succeeded(outcomes)
	if len(candidates) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrAllPassesFailed, "transcribe", "",
			strings.Join(Failures(outcomes), "; "), nil)
	}
	degradations = append(degradations, Failures(outcomes)...)

	best, _ := SelectBest(candidates)
	confidence := EstimateConfidence(candidates, p.confCfg)

	duration := best.Duration
	if duration == 0 {
		duration = meta.DurationSeconds
	}

	logger.Info("transcription complete",
		logging.String("strategy", string(best.Strategy)),
		logging.Int("passes_succeeded", len(candidates)),
		logging.Float64("confidence", confidence),
		logging.Float64("quality_score", quality.Score),
		logging.Duration("elapsed", time.Since(start)),
		logging.String(logging.FieldEventType, "transcription_complete"),
	)

	return &Result{
		Text:       best.Text,
		Duration:   duration,
		Confidence: confidence,
		Segments:   best.Segments,
		Metadata: ResultMetadata{
			FileSizeBytes:      report.SizeBytes,
			Format:             strings.TrimPrefix(report.Extension, "."),
			ContentHash:        report.Hash,
			ProcessingMillis:   time.Since(start).Milliseconds(),
			QualityScore:       quality.Score,
			Strategy:           best.Strategy,
			OptimizationLabels: optimized.Labels,
			QualityIssues:      quality.Issues,
			Recommendations:    quality.Recommendations,
			Degradations:       degradations,
			PassesSucceeded:    len(candidates),
		},
	}, nil
}
