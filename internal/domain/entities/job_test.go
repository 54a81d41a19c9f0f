package entities

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewJob_Validation(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		meetingType string
		inputType   InputType
		transcript  *string
		wantErr     string
	}{
		{"valid text", "standup", InputTypeText, strPtr("we agreed to ship on friday"), ""},
		{"transcript exactly 10", "standup", InputTypeText, strPtr(strings.Repeat("a", 10)), ""},
		{"transcript 9 chars", "standup", InputTypeText, strPtr(strings.Repeat("a", 9)), "transcriptText must be at least 10 characters"},
		{"transcript padded to 10 with spaces", "standup", InputTypeText, strPtr("  " + strings.Repeat("a", 9) + "  "), "transcriptText must be at least 10 characters"},
		{"transcript missing", "standup", InputTypeText, nil, "transcriptText is required when inputType is Text"},
		{"transcript blank", "standup", InputTypeText, strPtr("   "), "transcriptText is required when inputType is Text"},
		{"meeting type 30", strings.Repeat("m", 30), InputTypeText, strPtr("0123456789"), ""},
		{"meeting type 31", strings.Repeat("m", 31), InputTypeText, strPtr("0123456789"), "meetingType must be 30 characters or less"},
		{"meeting type blank", "  ", InputTypeText, strPtr("0123456789"), "meetingType is required"},
		{"input type invalid", "standup", InputType(7), nil, "inputType is invalid"},
		{"audio without transcript", "standup", InputTypeAudio, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := NewJob(tt.meetingType, tt.inputType, tt.transcript, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, errors.Is(err, ErrInvalidInput))
				assert.Nil(t, job)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, JobStatusPending, job.Status)
			assert.Equal(t, now, job.CreatedAtUTC)
			assert.Equal(t, now, job.UpdatedAtUTC)
			assert.Nil(t, job.ErrorMessage)
		})
	}
}

func TestJob_Lifecycle(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	job, err := NewJob("planning", InputTypeText, strPtr("long enough transcript"), t0)
	require.NoError(t, err)

	require.NoError(t, job.MarkAsProcessing(t0.Add(time.Second)))
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.Equal(t, t0.Add(time.Second), job.UpdatedAtUTC)

	result, err := job.MarkAsDone(`{"decisions":[]}`, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, JobStatusDone, job.Status)
	assert.Equal(t, job.ID, result.JobID)
	assert.Equal(t, `{"decisions":[]}`, string(result.ResultJSON))

	// terminal
	err = job.MarkAsFailed("late failure", t0.Add(3*time.Second))
	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, JobStatusDone, transErr.From)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, job.ErrorMessage)
}

func TestJob_MarkAsFailedTruncates(t *testing.T) {
	job, err := NewJob("planning", InputTypeText, strPtr("long enough transcript"), time.Now())
	require.NoError(t, err)
	require.NoError(t, job.MarkAsProcessing(time.Now()))

	require.NoError(t, job.MarkAsFailed(strings.Repeat("é", 800), time.Now()))
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, MaxErrorMessageLength, len([]rune(*job.ErrorMessage)))
	assert.Equal(t, JobStatusFailed, job.Status)
}

func TestJobStatus_Transitions(t *testing.T) {
	assert.True(t, JobStatusPending.CanTransitionTo(JobStatusProcessing))
	assert.True(t, JobStatusPending.CanTransitionTo(JobStatusDone))
	assert.True(t, JobStatusProcessing.CanTransitionTo(JobStatusFailed))
	assert.False(t, JobStatusProcessing.CanTransitionTo(JobStatusPending))
	assert.False(t, JobStatusFailed.CanTransitionTo(JobStatusDone))
	assert.False(t, JobStatusDone.CanTransitionTo(JobStatusProcessing))
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "Processing", JobStatusProcessing.String())
	assert.Equal(t, "JobStatus(9)", JobStatus(9).String())
	assert.Equal(t, "Video", InputTypeVideo.String())
	assert.False(t, InputType(-1).IsValid())
}
