package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/domain/repositories"
)

// JobRepository handles job data operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ repositories.JobRepository = (*JobRepository)(nil)

// Create creates a new job
func (r *JobRepository) Create(ctx context.Context, job *entities.Job) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Omit("Result").Create(job).Error
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Job, error) {
	var job entities.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetWithResult retrieves a job by ID with its result preloaded
func (r *JobRepository) GetWithResult(ctx context.Context, id uuid.UUID) (*entities.Job, error) {
	var job entities.Job
	if err := r.db.WithContext(ctx).Preload("Result").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// NextPending retrieves the oldest pending text job
func (r *JobRepository) NextPending(ctx context.Context) (*entities.Job, error) {
	var job entities.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND input_type = ?", entities.JobStatusPending, entities.InputTypeText).
		Order("created_at ASC").
		Order("id ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// SaveTransition conditionally updates the job's status columns
func (r *JobRepository) SaveTransition(ctx context.Context, job *entities.Job, from entities.JobStatus) (bool, error) {
	if job == nil {
		return false, errors.New("job cannot be nil")
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Job{}).
		Where("id = ? AND status = ?", job.ID, from).
		Updates(transitionColumns(job))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SaveResult stores the result and the Done transition atomically
func (r *JobRepository) SaveResult(ctx context.Context, job *entities.Job, from entities.JobStatus, result *entities.JobResult) error {
	if job == nil || result == nil {
		return errors.New("job and result cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		res := tx.Model(&entities.Job{}).
			Where("id = ? AND status = ?", job.ID, from).
			Updates(transitionColumns(job))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrTransitionConflict
		}
		return nil
	})
}

// FailStalled marks processing jobs that stopped progressing as failed
func (r *JobRepository) FailStalled(ctx context.Context, before time.Time, message string, now time.Time) (int64, error) {
	msg := entities.TruncateErrorMessage(message)
	result := r.db.WithContext(ctx).
		Model(&entities.Job{}).
		Where("status = ? AND updated_at < ?", entities.JobStatusProcessing, before.UTC()).
		Updates(map[string]interface{}{
			"status":        entities.JobStatusFailed,
			"error_message": msg,
			"updated_at":    now.UTC(),
		})
	return result.RowsAffected, result.Error
}

// transitionColumns maps the mutable fields of a job; a nil error message clears the column
func transitionColumns(job *entities.Job) map[string]interface{} {
	var errMsg interface{}
	if job.ErrorMessage != nil {
		errMsg = *job.ErrorMessage
	}
	return map[string]interface{}{
		"status":        job.Status,
		"error_message": errMsg,
		"updated_at":    job.UpdatedAtUTC,
	}
}
