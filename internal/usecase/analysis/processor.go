package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/domain/repositories"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-actions/pkg/jobcontext"
)

const (
	jobType = "transcript_analysis"

	// persistTimeout bounds writes that must survive worker shutdown
	persistTimeout = 10 * time.Second

	// StalledJobMessage is stored on Processing jobs failed at worker start
	StalledJobMessage = "processing abandoned: worker restarted"
)

// ErrUnexpectedFailure wraps panics raised while analyzing a job
var ErrUnexpectedFailure = errors.New("unexpected processor failure")

// Analyzer turns a transcript into a JSON document of meeting insights
type Analyzer interface {
	Analyze(ctx context.Context, transcriptText string) (string, error)
}

// ResultCache stores finished results for fast reads
type ResultCache interface {
	SetResult(ctx context.Context, jobID uuid.UUID, resultJSON string) error
}

// ResultArchiver copies finished results to long-term storage
type ResultArchiver interface {
	ArchiveResult(ctx context.Context, jobID uuid.UUID, resultJSON string) error
}

// EventPublisher announces terminal job transitions
type EventPublisher interface {
	PublishJobEvent(ctx context.Context, event entities.JobEvent) error
}

// Option configures a Processor
type Option func(*Processor)

// WithClock overrides the time source used for job timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithJobTimeout bounds a single model call
func WithJobTimeout(timeout time.Duration) Option {
	return func(p *Processor) { p.jobTimeout = timeout }
}

// WithStaleAfter sets how long a job may stay Processing before RecoverStalled fails it
func WithStaleAfter(d time.Duration) Option {
	return func(p *Processor) { p.staleAfter = d }
}

// WithResultCache enables caching of finished results
func WithResultCache(cache ResultCache) Option {
	return func(p *Processor) { p.cache = cache }
}

// WithArchiver enables archiving of finished results
func WithArchiver(archiver ResultArchiver) Option {
	return func(p *Processor) { p.archiver = archiver }
}

// WithPublisher enables job event publishing
func WithPublisher(publisher EventPublisher) Option {
	return func(p *Processor) { p.publisher = publisher }
}

// Processor claims one pending job per call and drives it to a terminal state
type Processor struct {
	repo       repositories.JobRepository
	analyzer   Analyzer
	logger     *zap.Logger
	now        func() time.Time
	jobTimeout time.Duration
	staleAfter time.Duration

	cache     ResultCache
	archiver  ResultArchiver
	publisher EventPublisher
}

// NewProcessor creates a Processor
func NewProcessor(repo repositories.JobRepository, analyzer Analyzer, logger *zap.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Processor{
		repo:       repo,
		analyzer:   analyzer,
		logger:     logger,
		now:        time.Now,
		jobTimeout: jobcontext.DefaultTimeout,
		staleAfter: 15 * time.Minute,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessNext handles the oldest pending Text job, if any.
// Failures after the claim, panics included, are recorded on the job and not returned.
func (p *Processor) ProcessNext(ctx context.Context) (err error) {
	job, err := p.repo.NextPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch pending job: %w", err)
	}
	if job == nil {
		return nil
	}

	from := job.Status
	if err := job.MarkAsProcessing(p.now()); err != nil {
		return err
	}

	// Only one worker will succeed if multiple workers see the same job
	claimed, err := p.repo.SaveTransition(ctx, job, from)
	if err != nil {
		return fmt.Errorf("failed to claim job %s: %w", job.ID, err)
	}
	if !claimed {
		p.logger.Info("⏭️ Job already claimed by another worker", zap.String("job_id", job.ID.String()))
		return nil
	}

	p.logger.Info("👷 Claimed job",
		zap.String("job_id", job.ID.String()),
		zap.String("meeting_type", job.MeetingType),
	)

	defer func() {
		if r := recover(); r != nil {
			err = p.recoverClaimed(ctx, job, r)
		}
	}()

	resultJSON, err := p.analyze(ctx, job)
	if err != nil {
		return p.fail(ctx, job, err)
	}

	done := *job
	result, err := done.MarkAsDone(resultJSON, p.now())
	if err != nil {
		return p.fail(ctx, job, err)
	}

	storeCtx, cancel := detached(ctx)
	defer cancel()

	if err := p.repo.SaveResult(storeCtx, &done, entities.JobStatusProcessing, result); err != nil {
		if errors.Is(err, entities.ErrTransitionConflict) {
			p.logger.Warn("⚠️ Job changed state during analysis, result discarded",
				zap.String("job_id", job.ID.String()),
			)
			return nil
		}
		return p.fail(ctx, job, fmt.Errorf("failed to save result: %w", err))
	}
	*job = done

	metrics.JobsProcessedTotal.WithLabelValues(entities.JobStatusDone.String()).Inc()
	p.logger.Info("✅ Job completed successfully", zap.String("job_id", job.ID.String()))

	p.recordInsights(job, resultJSON)
	p.afterDone(storeCtx, job, resultJSON)
	return nil
}

// RecoverStalled fails jobs left Processing by a previous worker run
func (p *Processor) RecoverStalled(ctx context.Context) (int64, error) {
	now := p.now()
	n, err := p.repo.FailStalled(ctx, now.Add(-p.staleAfter), StalledJobMessage, now)
	if err != nil {
		return 0, fmt.Errorf("failed to recover stalled jobs: %w", err)
	}
	if n > 0 {
		metrics.JobsRecoveredTotal.Add(float64(n))
		p.logger.Warn("🧹 Failed stalled jobs",
			zap.Int64("count", n),
			zap.Duration("stale_after", p.staleAfter),
		)
	}
	return n, nil
}

// analyze runs the model call inside a bounded job context
func (p *Processor) analyze(ctx context.Context, job *entities.Job) (string, error) {
	jobCtx, cancel := jobcontext.JobBegin(ctx, job.ID, jobType, p.jobTimeout)
	defer cancel()

	meta := jobcontext.GetJobMetadata(jobCtx)
	fields := []zap.Field{
		zap.String("job_id", meta.JobID.String()),
		zap.String("job_type", meta.JobType),
	}

	var resultJSON string
	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		out, err := p.analyzer.Analyze(ctx, job.Transcript())
		if err != nil {
			return err
		}
		resultJSON = out
		return nil
	})
	duration := time.Since(meta.StartTime)
	fields = append(fields, zap.Duration("duration", duration))

	if err != nil {
		var panicErr *jobcontext.PanicError
		if errors.As(err, &panicErr) {
			p.logger.Error("💥 Panic during analysis", append(fields,
				zap.Any("panic", panicErr.Value),
				zap.ByteString("stack", panicErr.Stack),
			)...)
			err = fmt.Errorf("%w: %v", ErrUnexpectedFailure, panicErr.Value)
		} else {
			p.logger.Warn("🤖 Analysis failed", append(fields, zap.Error(err))...)
		}
		metrics.AnalysisDurationSeconds.WithLabelValues("failure").Observe(duration.Seconds())
		return "", err
	}

	metrics.AnalysisDurationSeconds.WithLabelValues("success").Observe(duration.Seconds())
	p.logger.Info("🤖 Analysis finished", fields...)
	return resultJSON, nil
}

// recoverClaimed fails a claimed job after a panic outside the model call.
// A job that already reached Done keeps its result.
func (p *Processor) recoverClaimed(ctx context.Context, job *entities.Job, r interface{}) error {
	cause := fmt.Errorf("%w: %v", ErrUnexpectedFailure, r)
	p.logger.Error("💥 Panic while processing job",
		zap.String("job_id", job.ID.String()),
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()),
	)
	if job.Status.IsTerminal() {
		return cause
	}
	return p.fail(ctx, job, cause)
}

// fail records cause on the job. The write is detached from ctx so shutdown
// never leaves the job Processing.
func (p *Processor) fail(ctx context.Context, job *entities.Job, cause error) error {
	msg := strings.TrimSpace(cause.Error())
	if msg == "" {
		msg = "unknown error"
	}

	p.logger.Error("❌ Job failed",
		zap.String("job_id", job.ID.String()),
		zap.Error(cause),
	)

	if err := job.MarkAsFailed(msg, p.now()); err != nil {
		return err
	}

	storeCtx, cancel := detached(ctx)
	defer cancel()

	ok, err := p.repo.SaveTransition(storeCtx, job, entities.JobStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to mark job %s as failed: %w", job.ID, err)
	}
	if !ok {
		p.logger.Warn("⚠️ Job changed state before failure was recorded", zap.String("job_id", job.ID.String()))
		return nil
	}

	metrics.JobsProcessedTotal.WithLabelValues(entities.JobStatusFailed.String()).Inc()
	p.publish(storeCtx, job)
	return nil
}

// afterDone runs best-effort side effects; failures are only logged
func (p *Processor) afterDone(ctx context.Context, job *entities.Job, resultJSON string) {
	if p.cache != nil {
		if err := p.cache.SetResult(ctx, job.ID, resultJSON); err != nil {
			p.sideEffectFailed("cache", job, err)
		}
	}
	if p.archiver != nil {
		if err := p.archiver.ArchiveResult(ctx, job.ID, resultJSON); err != nil {
			p.sideEffectFailed("archive", job, err)
		}
	}
	p.publish(ctx, job)
}

// recordInsights counts extracted items per category. A result whose shape
// differs from the prompt contract is still kept.
func (p *Processor) recordInsights(job *entities.Job, resultJSON string) {
	result, err := entities.ParseAnalysisResult(resultJSON)
	if err != nil {
		p.logger.Warn("⚠️ Result does not match the expected categories",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return
	}

	counts := result.Counts()
	fields := []zap.Field{zap.String("job_id", job.ID.String())}
	for _, category := range entities.AnalysisCategories {
		metrics.AnalysisItemsTotal.WithLabelValues(category).Add(float64(counts[category]))
		fields = append(fields, zap.Int(category, counts[category]))
	}
	if result.IsEmpty() {
		p.logger.Warn("📭 Analysis found no insights", fields...)
		return
	}
	p.logger.Info("📊 Analysis insights", fields...)
}

func (p *Processor) publish(ctx context.Context, job *entities.Job) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishJobEvent(ctx, entities.NewJobEvent(job)); err != nil {
		p.sideEffectFailed("publish", job, err)
	}
}

func (p *Processor) sideEffectFailed(effect string, job *entities.Job, err error) {
	metrics.SideEffectErrorsTotal.WithLabelValues(effect).Inc()
	p.logger.Warn("⚠️ Side effect failed",
		zap.String("effect", effect),
		zap.String("job_id", job.ID.String()),
		zap.Error(err),
	)
}

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}
