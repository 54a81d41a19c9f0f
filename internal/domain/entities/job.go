package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// MaxMeetingTypeLength is the longest accepted meeting type label, in characters
	MaxMeetingTypeLength = 30
	// MinTranscriptLength is the shortest accepted Text transcript after trimming, in characters
	MinTranscriptLength = 10
	// MaxErrorMessageLength bounds the error text stored on a failed job, in characters
	MaxErrorMessageLength = 500
)

// JobStatus represents the lifecycle state of an analysis job.
// Persisted and transmitted as an integer.
type JobStatus int

const (
	JobStatusPending    JobStatus = 0 // Waiting for the worker
	JobStatusProcessing JobStatus = 1 // Claimed by the worker, model call in flight
	JobStatusDone       JobStatus = 2 // Result stored
	JobStatusFailed     JobStatus = 3 // Terminal failure, see ErrorMessage
)

// String returns the status name used in conflict responses and logs
func (s JobStatus) String() string {
	switch s {
	case JobStatusPending:
		return "Pending"
	case JobStatusProcessing:
		return "Processing"
	case JobStatusDone:
		return "Done"
	case JobStatusFailed:
		return "Failed"
	default:
		return fmt.Sprintf("JobStatus(%d)", int(s))
	}
}

// IsValid reports whether s is one of the declared statuses
func (s JobStatus) IsValid() bool {
	return s >= JobStatusPending && s <= JobStatusFailed
}

// IsTerminal reports whether no further transition is allowed from s
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// CanTransitionTo reports whether moving from s to next keeps the status moving forward.
// Pending -> Done is allowed for the development completion endpoint.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing || next == JobStatusDone || next == JobStatusFailed
	case JobStatusProcessing:
		return next == JobStatusDone || next == JobStatusFailed
	default:
		return false
	}
}

// InputType represents the kind of payload submitted with a job.
// Only InputTypeText has a processing path.
type InputType int

const (
	InputTypeText  InputType = 0
	InputTypeAudio InputType = 1
	InputTypeVideo InputType = 2
)

// String returns the input type name
func (t InputType) String() string {
	switch t {
	case InputTypeText:
		return "Text"
	case InputTypeAudio:
		return "Audio"
	case InputTypeVideo:
		return "Video"
	default:
		return fmt.Sprintf("InputType(%d)", int(t))
	}
}

// IsValid reports whether t is one of the declared input types
func (t InputType) IsValid() bool {
	return t >= InputTypeText && t <= InputTypeVideo
}

// Job is a request to analyze one meeting transcript
type Job struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	MeetingType    string     `json:"meeting_type" gorm:"type:varchar(30);not null"`
	InputType      InputType  `json:"input_type" gorm:"type:smallint;not null;index:idx_jobs_status_input_created,priority:2"`
	Status         JobStatus  `json:"status" gorm:"type:smallint;not null;index:idx_jobs_status_input_created,priority:1"`
	TranscriptText *string    `json:"transcript_text,omitempty" gorm:"type:text"`
	ErrorMessage   *string    `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAtUTC   time.Time  `json:"created_at_utc" gorm:"column:created_at;not null;index:idx_jobs_status_input_created,priority:3"`
	UpdatedAtUTC   time.Time  `json:"updated_at_utc" gorm:"column:updated_at;not null"`
	Result         *JobResult `json:"result,omitempty" gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Job) TableName() string {
	return "jobs"
}

// JobResult holds the model output for a completed job
type JobResult struct {
	JobID        uuid.UUID      `json:"job_id" gorm:"type:uuid;primaryKey"`
	ResultJSON   datatypes.JSON `json:"result_json" gorm:"column:result_json;type:text;not null"`
	CreatedAtUTC time.Time      `json:"created_at_utc" gorm:"column:created_at;not null"`
}

// TableName specifies the table name for GORM
func (JobResult) TableName() string {
	return "job_results"
}

// NewJob validates the submission and creates a Pending job stamped with now (UTC)
func NewJob(meetingType string, inputType InputType, transcriptText *string, now time.Time) (*Job, error) {
	if strings.TrimSpace(meetingType) == "" {
		return nil, NewValidationError("meetingType", "meetingType is required")
	}
	if utf8.RuneCountInString(meetingType) > MaxMeetingTypeLength {
		return nil, NewValidationError("meetingType", fmt.Sprintf("meetingType must be %d characters or less", MaxMeetingTypeLength))
	}
	if !inputType.IsValid() {
		return nil, NewValidationError("inputType", "inputType is invalid")
	}
	if inputType == InputTypeText {
		if transcriptText == nil || strings.TrimSpace(*transcriptText) == "" {
			return nil, NewValidationError("transcriptText", "transcriptText is required when inputType is Text")
		}
		if utf8.RuneCountInString(strings.TrimSpace(*transcriptText)) < MinTranscriptLength {
			return nil, NewValidationError("transcriptText", fmt.Sprintf("transcriptText must be at least %d characters", MinTranscriptLength))
		}
	}

	now = now.UTC()
	return &Job{
		ID:             uuid.New(),
		MeetingType:    meetingType,
		InputType:      inputType,
		Status:         JobStatusPending,
		TranscriptText: transcriptText,
		CreatedAtUTC:   now,
		UpdatedAtUTC:   now,
	}, nil
}

// Transcript returns the transcript text or an empty string
func (j *Job) Transcript() string {
	if j.TranscriptText == nil {
		return ""
	}
	return *j.TranscriptText
}

// MarkAsProcessing marks the job as claimed by the worker
func (j *Job) MarkAsProcessing(now time.Time) error {
	return j.transition(JobStatusProcessing, now)
}

// MarkAsDone marks the job as completed and builds its result row
func (j *Job) MarkAsDone(resultJSON string, now time.Time) (*JobResult, error) {
	if err := j.transition(JobStatusDone, now); err != nil {
		return nil, err
	}
	return &JobResult{
		JobID:        j.ID,
		ResultJSON:   datatypes.JSON(resultJSON),
		CreatedAtUTC: j.UpdatedAtUTC,
	}, nil
}

// MarkAsFailed marks the job as failed; errMsg is truncated to MaxErrorMessageLength
func (j *Job) MarkAsFailed(errMsg string, now time.Time) error {
	if err := j.transition(JobStatusFailed, now); err != nil {
		return err
	}
	msg := TruncateErrorMessage(errMsg)
	j.ErrorMessage = &msg
	return nil
}

func (j *Job) transition(next JobStatus, now time.Time) error {
	if !j.Status.CanTransitionTo(next) {
		return &TransitionError{From: j.Status, To: next}
	}
	j.Status = next
	j.UpdatedAtUTC = now.UTC()
	if next != JobStatusFailed {
		j.ErrorMessage = nil
	}
	return nil
}

// TruncateErrorMessage cuts msg to at most MaxErrorMessageLength characters
func TruncateErrorMessage(msg string) string {
	if utf8.RuneCountInString(msg) <= MaxErrorMessageLength {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:MaxErrorMessageLength])
}
