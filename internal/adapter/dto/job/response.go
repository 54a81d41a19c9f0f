package job

import "time"

// CreateJobResponse is returned when a job is accepted
type CreateJobResponse struct {
	JobID string `json:"jobId"`
}

// JobStatusResponse represents the current state of a job
type JobStatusResponse struct {
	JobID        string    `json:"jobId"`
	Status       int       `json:"status"` // 0 Pending, 1 Processing, 2 Done, 3 Failed
	CreatedAtUTC time.Time `json:"createdAtUtc"`
	UpdatedAtUTC time.Time `json:"updatedAtUtc"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
}

// JobResultResponse carries the analysis JSON exactly as stored
type JobResultResponse struct {
	JobID      string `json:"jobId"`
	ResultJSON string `json:"resultJson"`
}
