package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/testutil"
)

func newJob(t *testing.T, inputType entities.InputType, createdAt time.Time) *entities.Job {
	t.Helper()
	var transcript *string
	if inputType == entities.InputTypeText {
		transcript = testutil.StrPtr("alice will own the rollout plan")
	}
	job, err := entities.NewJob("standup", inputType, transcript, createdAt)
	require.NoError(t, err)
	return job
}

func TestJobRepository_CreateAndGet(t *testing.T) {
	repo := NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	job := newJob(t, entities.InputTypeText, now)
	require.NoError(t, repo.Create(ctx, job))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job.MeetingType, got.MeetingType)
	assert.Equal(t, entities.JobStatusPending, got.Status)
	assert.True(t, now.Equal(got.CreatedAtUTC))
	assert.Equal(t, job.Transcript(), got.Transcript())

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestJobRepository_NextPending(t *testing.T) {
	repo := NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	none, err := repo.NextPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	audio := newJob(t, entities.InputTypeAudio, base.Add(-time.Hour))
	later := newJob(t, entities.InputTypeText, base.Add(time.Minute))
	earlier := newJob(t, entities.InputTypeText, base)
	for _, j := range []*entities.Job{audio, later, earlier} {
		require.NoError(t, repo.Create(ctx, j))
	}

	next, err := repo.NextPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, earlier.ID, next.ID)
}

func TestJobRepository_SaveTransitionIsConditional(t *testing.T) {
	repo := NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	job := newJob(t, entities.InputTypeText, now)
	require.NoError(t, repo.Create(ctx, job))

	first := *job
	require.NoError(t, first.MarkAsProcessing(now.Add(time.Second)))
	ok, err := repo.SaveTransition(ctx, &first, entities.JobStatusPending)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second writer that still believes the job is Pending loses
	second := *job
	require.NoError(t, second.MarkAsProcessing(now.Add(2*time.Second)))
	ok, err = repo.SaveTransition(ctx, &second, entities.JobStatusPending)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, first.MarkAsFailed("boom", now.Add(3*time.Second)))
	ok, err = repo.SaveTransition(ctx, &first, entities.JobStatusProcessing)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "boom", *got.ErrorMessage)
}

func TestJobRepository_SaveResult(t *testing.T) {
	repo := NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	job := newJob(t, entities.InputTypeText, now)
	require.NoError(t, repo.Create(ctx, job))
	require.NoError(t, job.MarkAsProcessing(now))
	ok, err := repo.SaveTransition(ctx, job, entities.JobStatusPending)
	require.NoError(t, err)
	require.True(t, ok)

	result, err := job.MarkAsDone(`{"decisions":["x"]}`, now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.SaveResult(ctx, job, entities.JobStatusProcessing, result))

	got, err := repo.GetWithResult(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entities.JobStatusDone, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, `{"decisions":["x"]}`, string(got.Result.ResultJSON))
}

func TestJobRepository_SaveResultConflictRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	job := newJob(t, entities.InputTypeText, now)
	require.NoError(t, repo.Create(ctx, job))

	// stored status is Pending, caller claims it was Processing
	stale := *job
	require.NoError(t, stale.MarkAsProcessing(now))
	result, err := stale.MarkAsDone(`{}`, now)
	require.NoError(t, err)

	err = repo.SaveResult(ctx, &stale, entities.JobStatusProcessing, result)
	assert.ErrorIs(t, err, entities.ErrTransitionConflict)

	var count int64
	require.NoError(t, db.Model(&entities.JobResult{}).Count(&count).Error)
	assert.Zero(t, count)

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusPending, got.Status)
}

func TestJobRepository_FailStalled(t *testing.T) {
	repo := NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	stalled := newJob(t, entities.InputTypeText, now.Add(-time.Hour))
	fresh := newJob(t, entities.InputTypeText, now.Add(-time.Minute))
	for _, j := range []*entities.Job{stalled, fresh} {
		require.NoError(t, repo.Create(ctx, j))
		from := j.Status
		require.NoError(t, j.MarkAsProcessing(j.CreatedAtUTC))
		ok, err := repo.SaveTransition(ctx, j, from)
		require.NoError(t, err)
		require.True(t, ok)
	}

	n, err := repo.FailStalled(ctx, now.Add(-15*time.Minute), "abandoned", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, stalled.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "abandoned", *got.ErrorMessage)

	got, err = repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusProcessing, got.Status)
}
