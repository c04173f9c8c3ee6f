package updatejob

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/creator"
	"gigboard/internal/models"
	"gigboard/internal/session"
	"gigboard/internal/store"
)

func seededBoard(t *testing.T) (*session.Boards, models.Job) {
	t.Helper()
	boards := session.NewBoards(store.NewMemoryStore()).
		WithClock(func() time.Time { return time.UnixMilli(1_710_000_000_000) })
	board, err := boards.Open(context.Background(), "b1")
	require.NoError(t, err)
	board.Flow.SetForm(creator.Form{Heading: "Mow lawn", Description: "Front yard", Task: "Gardening", UstarPoints: "10"})
	job, err := board.Flow.SaveDraft()
	require.NoError(t, err)
	require.NoError(t, boards.Save(context.Background(), board))
	return boards, job
}

func TestHandler_Execute_ReplacesByID(t *testing.T) {
	boards, job := seededBoard(t)
	h := NewHandler(LoadConfig(), boards, nil, logger.NewTestLogger(t))

	edited := job
	edited.Heading = "Mow lawn and edges"
	edited.UstarPoints = "not-validated"

	out, err := h.Execute(context.Background(), &Input{BoardID: "b1", Job: edited})
	require.NoError(t, err)
	assert.Equal(t, edited, out.Job)
	assert.Equal(t, []models.Notification{creator.NotifyJobUpdated}, out.Notifications)

	board, err := boards.Open(context.Background(), "b1")
	require.NoError(t, err)
	jobs := board.Flow.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "Mow lawn and edges", jobs[0].Heading)
	assert.Equal(t, "not-validated", jobs[0].UstarPoints)
	assert.Equal(t, models.JobStatusDraft, jobs[0].Status)
}

func TestHandler_Execute_UnknownID(t *testing.T) {
	boards, job := seededBoard(t)
	h := NewHandler(LoadConfig(), boards, nil, logger.NewNoOpLogger())

	missing := job
	missing.ID = job.ID + 99
	_, err := h.Execute(context.Background(), &Input{BoardID: "b1", Job: missing})

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeJobNotFound, stdErr.Code)

	board, err := boards.Open(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, job.ID, board.Flow.Jobs()[0].ID)
	assert.Equal(t, "Mow lawn", board.Flow.Jobs()[0].Heading)
}

func TestHandler_Execute_InvalidStatus(t *testing.T) {
	boards, job := seededBoard(t)
	h := NewHandler(LoadConfig(), boards, nil, logger.NewNoOpLogger())

	job.Status = "archived"
	_, err := h.Execute(context.Background(), &Input{BoardID: "b1", Job: job})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}
