package savejobdraft

import (
	"context"
	stderrors "errors"
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

type mockPublisher struct {
	PublishFunc func(ctx context.Context, eventType, boardID string, job models.Job) error
	calls       []string
}

func (m *mockPublisher) PublishJobEvent(ctx context.Context, eventType, boardID string, job models.Job) error {
	m.calls = append(m.calls, eventType)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, eventType, boardID, job)
	}
	return nil
}

func (m *mockPublisher) Close() {}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, pub *mockPublisher) (*Handler, *session.Boards) {
	t.Helper()
	boards := session.NewBoards(store.NewMemoryStore()).WithClock(func() time.Time { return fixedNow })
	return NewHandler(LoadConfig(), boards, pub, nil, logger.NewTestLogger(t)), boards
}

func validForm() creator.Form {
	return creator.Form{Heading: "Clean gutters", Description: "Two storey house", Task: "Cleaning", UstarPoints: "30"}
}

func TestHandler_Execute_Success(t *testing.T) {
	pub := &mockPublisher{}
	h, boards := setup(t, pub)

	out, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm()})
	require.NoError(t, err)

	assert.Equal(t, fixedNow.UnixMilli(), out.Job.ID)
	assert.Equal(t, models.JobStatusDraft, out.Job.Status)
	assert.Equal(t, "30", out.Job.UstarPoints)
	assert.Equal(t, 1, out.JobCount)
	assert.True(t, out.EventPublished)
	assert.Equal(t, []models.Notification{creator.NotifyDraftSaved}, out.Notifications)
	assert.Empty(t, out.Navigation)
	assert.Equal(t, []string{models.EventJobSaved}, pub.calls)

	board, err := boards.Open(context.Background(), "board-1")
	require.NoError(t, err)
	assert.True(t, board.Flow.Form().IsEmpty())
	assert.Len(t, board.Flow.Jobs(), 1)
}

func TestHandler_Execute_SecondDraftGetsNextID(t *testing.T) {
	h, _ := setup(t, &mockPublisher{})

	first, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm()})
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm()})
	require.NoError(t, err)

	assert.Equal(t, first.Job.ID+1, second.Job.ID)
	assert.Equal(t, 2, second.JobCount)
}

func TestHandler_Execute_InvalidForm(t *testing.T) {
	pub := &mockPublisher{}
	h, boards := setup(t, pub)

	form := validForm()
	form.UstarPoints = "abc"
	_, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: form})

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeJobFormValidationFailed, stdErr.Code)
	assert.Equal(t, []string{"ustarPoints"}, stdErr.Metadata["fields"])
	assert.Empty(t, pub.calls)

	board, err := boards.Open(context.Background(), "board-1")
	require.NoError(t, err)
	assert.Empty(t, board.Flow.Jobs())
	assert.Equal(t, "abc", board.Flow.Form().UstarPoints)
	assert.True(t, board.Flow.Errors()[creator.FieldUstarPoints])
}

func TestHandler_Execute_PublishFailureKeepsDraft(t *testing.T) {
	pub := &mockPublisher{PublishFunc: func(context.Context, string, string, models.Job) error {
		return stderrors.New("nats: no servers available")
	}}
	h, _ := setup(t, pub)

	out, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm()})
	require.NoError(t, err)
	assert.False(t, out.EventPublished)
	assert.Equal(t, 1, out.JobCount)
}

func TestHandler_Execute_MissingBoard(t *testing.T) {
	h, _ := setup(t, &mockPublisher{})

	_, err := h.Execute(context.Background(), &Input{Form: validForm()})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}

func TestHandler_Execute_RedeliveredJobReplaysOutput(t *testing.T) {
	pub := &mockPublisher{}
	h, boards := setup(t, pub)

	first, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm(), JobKey: 2251799813685249})
	require.NoError(t, err)
	again, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm(), JobKey: 2251799813685249})
	require.NoError(t, err)

	assert.Equal(t, first.Job.ID, again.Job.ID)
	assert.Equal(t, first.Job.Heading, again.Job.Heading)
	assert.Equal(t, first.Notifications, again.Notifications)
	assert.Equal(t, 1, again.JobCount)
	assert.Equal(t, []string{models.EventJobSaved, models.EventJobSaved}, pub.calls)

	board, err := boards.Open(context.Background(), "board-1")
	require.NoError(t, err)
	assert.Len(t, board.Flow.Jobs(), 1)

	next, err := h.Execute(context.Background(), &Input{BoardID: "board-1", Form: validForm(), JobKey: 2251799813685250})
	require.NoError(t, err)
	assert.Equal(t, first.Job.ID+1, next.Job.ID)
	assert.Equal(t, 2, next.JobCount)
}
