package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
)

// JobRepository defines persistence operations for analysis jobs and their results
type JobRepository interface {
	// Create inserts a new job
	Create(ctx context.Context, job *entities.Job) error

	// GetByID returns the job or nil when it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Job, error)

	// GetWithResult returns the job with its result preloaded, or nil when it does not exist
	GetWithResult(ctx context.Context, id uuid.UUID) (*entities.Job, error)

	// NextPending returns the oldest Pending Text job, or nil when there is none
	NextPending(ctx context.Context) (*entities.Job, error)

	// SaveTransition persists job's status, updated_at and error_message only if the stored
	// status still equals from. It reports whether the row was updated.
	SaveTransition(ctx context.Context, job *entities.Job, from entities.JobStatus) (bool, error)

	// SaveResult inserts result and persists the job's transition from `from` in one transaction.
	// Returns entities.ErrTransitionConflict when the stored status no longer equals from.
	SaveResult(ctx context.Context, job *entities.Job, from entities.JobStatus, result *entities.JobResult) error

	// FailStalled fails Processing jobs last updated before the cutoff and returns how many were changed
	FailStalled(ctx context.Context, before time.Time, message string, now time.Time) (int64, error)
}
