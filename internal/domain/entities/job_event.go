package entities

import (
	"time"

	"github.com/google/uuid"
)

// JobEvent announces that a job reached a terminal state
type JobEvent struct {
	JobID        uuid.UUID `json:"jobId"`
	Status       JobStatus `json:"status"`
	StatusName   string    `json:"statusName"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewJobEvent snapshots the job's current status
func NewJobEvent(job *Job) JobEvent {
	return JobEvent{
		JobID:        job.ID,
		Status:       job.Status,
		StatusName:   job.Status.String(),
		ErrorMessage: job.ErrorMessage,
		OccurredAt:   job.UpdatedAtUTC,
	}
}
