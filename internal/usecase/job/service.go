package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/domain/repositories"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/metrics"
	usecaseErrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
)

// Service defines job API operations
type Service interface {
	// CreateJob validates the submission and stores a Pending job
	CreateJob(ctx context.Context, input CreateJobInput) (*entities.Job, error)

	// GetJob returns the job or usecaseErrors.ErrJobNotFound
	GetJob(ctx context.Context, id uuid.UUID) (*entities.Job, error)

	// GetResult returns the stored result of a Done job
	GetResult(ctx context.Context, id uuid.UUID) (*ResultOutput, error)

	// DevComplete stores resultJSON as the job's result and marks it Done
	DevComplete(ctx context.Context, id uuid.UUID, resultJSON string) error
}

// CreateJobInput contains data for creating a job
type CreateJobInput struct {
	MeetingType    string
	InputType      entities.InputType
	TranscriptText *string
}

// ResultOutput is the stored analysis of a job
type ResultOutput struct {
	JobID      uuid.UUID
	ResultJSON string
}

// ResultCache is an optional read-through store for finished results
type ResultCache interface {
	GetResult(ctx context.Context, jobID uuid.UUID) (string, bool, error)
	SetResult(ctx context.Context, jobID uuid.UUID, resultJSON string) error
}

type jobService struct {
	repo   repositories.JobRepository
	cache  ResultCache
	logger *zap.Logger
	now    func() time.Time
}

// NewJobService creates a job service. cache may be nil.
func NewJobService(repo repositories.JobRepository, cache ResultCache, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

func (s *jobService) CreateJob(ctx context.Context, input CreateJobInput) (*entities.Job, error) {
	job, err := entities.NewJob(input.MeetingType, input.InputType, input.TranscriptText, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.InputType.String()).Inc()
	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("input_type", job.InputType.String()),
	)
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, id uuid.UUID) (*entities.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, usecaseErrors.ErrJobNotFound
	}
	return job, nil
}

func (s *jobService) GetResult(ctx context.Context, id uuid.UUID) (*ResultOutput, error) {
	// Results never change once written, so a cache hit implies the job is Done
	if s.cache != nil {
		cached, ok, err := s.cache.GetResult(ctx, id)
		if err != nil {
			s.logger.Warn("result cache read failed", zap.String("job_id", id.String()), zap.Error(err))
		} else if ok {
			return &ResultOutput{JobID: id, ResultJSON: cached}, nil
		}
	}

	job, err := s.repo.GetWithResult(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, usecaseErrors.ErrJobNotFound
	}
	if job.Status != entities.JobStatusDone {
		return nil, &usecaseErrors.StatusError{Err: usecaseErrors.ErrJobNotCompleted, Status: job.Status.String()}
	}
	if job.Result == nil {
		return nil, usecaseErrors.ErrResultNotFound
	}

	out := &ResultOutput{JobID: job.ID, ResultJSON: string(job.Result.ResultJSON)}
	s.cacheResult(ctx, out)
	return out, nil
}

func (s *jobService) DevComplete(ctx context.Context, id uuid.UUID, resultJSON string) error {
	if !json.Valid([]byte(resultJSON)) {
		return usecaseErrors.ErrInvalidResultJSON
	}

	job, err := s.repo.GetWithResult(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return usecaseErrors.ErrJobNotFound
	}
	if job.Result != nil {
		return usecaseErrors.ErrJobHasResult
	}

	from := job.Status
	result, err := job.MarkAsDone(resultJSON, s.now())
	if err != nil {
		return &usecaseErrors.StatusError{Err: usecaseErrors.ErrJobInvalidState, Status: from.String()}
	}

	if err := s.repo.SaveResult(ctx, job, from, result); err != nil {
		if errors.Is(err, entities.ErrTransitionConflict) {
			return &usecaseErrors.StatusError{Err: usecaseErrors.ErrJobInvalidState, Status: from.String()}
		}
		return fmt.Errorf("failed to save result: %w", err)
	}

	s.logger.Info("job completed manually", zap.String("job_id", job.ID.String()))
	s.cacheResult(ctx, &ResultOutput{JobID: job.ID, ResultJSON: resultJSON})
	return nil
}

func (s *jobService) cacheResult(ctx context.Context, out *ResultOutput) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetResult(ctx, out.JobID, out.ResultJSON); err != nil {
		s.logger.Warn("result cache write failed", zap.String("job_id", out.JobID.String()), zap.Error(err))
	}
}
