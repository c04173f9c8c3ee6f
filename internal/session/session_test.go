package session

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/browse"
	"gigboard/internal/catalog"
	"gigboard/internal/common/errors"
	"gigboard/internal/creator"
	"gigboard/internal/models"
	"gigboard/internal/store"
)

type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string, interface{}) error { return f.err }
func (f failingStore) Save(context.Context, string, interface{}) error { return f.err }

type failingCatalog struct{}

func (failingCatalog) ListGigs(context.Context) ([]models.Gig, error) {
	return nil, catalog.ErrCatalogQuery
}

func validForm() creator.Form {
	return creator.Form{Heading: "Paint fence", Description: "Two coats", Task: "Painting", UstarPoints: "40"}
}

func TestBoards_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	boards := NewBoards(store.NewMemoryStore()).WithClock(func() time.Time { return now })

	board, err := boards.Open(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, board.Flow.Jobs())

	board.Flow.SetForm(validForm())
	job, err := board.Flow.SaveDraft()
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), job.ID)
	assert.Equal(t, []models.Notification{creator.NotifyDraftSaved}, board.Events.Notifications)
	require.NoError(t, boards.Save(ctx, board))

	reopened, err := boards.Open(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, reopened.Flow.Jobs(), 1)
	assert.Equal(t, job.ID, reopened.Flow.Jobs()[0].ID)
	assert.Empty(t, reopened.Events.Notifications)

	reopened.Flow.SetForm(validForm())
	next, err := reopened.Flow.SaveDraft()
	require.NoError(t, err)
	assert.Equal(t, job.ID+1, next.ID)
}

func TestBoards_ReplayLog(t *testing.T) {
	ctx := context.Background()
	boards := NewBoards(store.NewMemoryStore())

	board, err := boards.Open(ctx, "b1")
	require.NoError(t, err)
	require.NoError(t, board.Record(0, map[string]int{"jobCount": 1}))
	for key := int64(1); key <= maxProcessedJobs+1; key++ {
		require.NoError(t, board.Record(key, map[string]int64{"jobKey": key}))
	}
	require.NoError(t, boards.Save(ctx, board))

	reopened, err := boards.Open(ctx, "b1")
	require.NoError(t, err)

	var out map[string]int64
	found, err := reopened.Replay(0, &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = reopened.Replay(1, &out)
	require.NoError(t, err)
	assert.False(t, found, "oldest entry is dropped past the cap")

	found, err = reopened.Replay(maxProcessedJobs+1, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(maxProcessedJobs+1), out["jobKey"])
}

func TestBoards_StoreFailure(t *testing.T) {
	boards := NewBoards(failingStore{err: stderrors.New("connection refused")})

	_, err := boards.Open(context.Background(), "b1")
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFlowStateUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestSessions_RoundTrip(t *testing.T) {
	ctx := context.Background()
	gigs := catalog.Static{
		{ID: "g1", Title: "Deliver parcels", Description: "Downtown"},
		{ID: "g2", Title: "Walk dogs", Description: "Mornings"},
	}
	sessions := NewSessions(store.NewMemoryStore(), gigs, "static")

	s, err := sessions.Open(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, s.Flow.Filtered(), 2)
	assert.Zero(t, s.Flow.NotificationCount())

	s.Flow.SetSearchTerm("DOG")
	s.Flow.SelectForView(gigs[1])
	require.NoError(t, sessions.Save(ctx, s))

	again, err := sessions.Open(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "DOG", again.Flow.SearchTerm())
	assert.Equal(t, browse.GatePendingAck, again.Flow.GateState())

	gig, err := again.Flow.AcceptDisclaimer()
	require.NoError(t, err)
	assert.Equal(t, "g2", gig.ID)
	assert.Equal(t, []models.Gig{gigs[1]}, again.Viewed)

	again.Flow.ClickNotification()
	require.NoError(t, again.Flow.Navigate(models.ViewMyJobs))
	assert.Equal(t, 1, again.Clicks)
	assert.Equal(t, []models.View{models.ViewMyJobs}, again.Views)
}

func TestSessions_CatalogFailure(t *testing.T) {
	sessions := NewSessions(store.NewMemoryStore(), failingCatalog{}, "postgres")

	_, err := sessions.Open(context.Background(), "s1")
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCatalogQueryFailed, stdErr.Code)
}

func TestFlowError(t *testing.T) {
	vErr := &creator.ValidationError{Errors: creator.FormErrors{
		creator.FieldHeading:     true,
		creator.FieldDescription: false,
		creator.FieldTask:        false,
		creator.FieldUstarPoints: true,
	}}

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"validation", vErr, errors.ErrCodeJobFormValidationFailed},
		{"confirmation", creator.ErrNoPendingConfirmation, errors.ErrCodeConfirmationNotPending},
		{"disclaimer", browse.ErrNotPendingAck, errors.ErrCodeDisclaimerNotPending},
		{"creator view", creator.ErrInvalidView, errors.ErrCodeInvalidView},
		{"browse view", browse.ErrInvalidView, errors.ErrCodeInvalidView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr, ok := errors.AsStandardError(FlowError("b1", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}

	stdErr, _ := errors.AsStandardError(FlowError("b1", vErr))
	assert.Equal(t, []string{"heading", "ustarPoints"}, stdErr.Metadata["fields"])

	plain := stderrors.New("boom")
	assert.Same(t, plain, FlowError("b1", plain))
	assert.NoError(t, FlowError("b1", nil))
}
