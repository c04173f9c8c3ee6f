package resolvedisclaimer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/browse"
	"gigboard/internal/catalog"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/session"
	"gigboard/internal/store"
)

var gigs = catalog.Static{
	{ID: "g1", Title: "Pack boxes", Description: "Warehouse"},
}

func pendingSession(t *testing.T) *session.Sessions {
	t.Helper()
	sessions := session.NewSessions(store.NewMemoryStore(), gigs, "static")
	s, err := sessions.Open(context.Background(), "s1")
	require.NoError(t, err)
	s.Flow.SelectForView(gigs[0])
	require.NoError(t, sessions.Save(context.Background(), s))
	return sessions
}

func TestHandler_Execute_Accept(t *testing.T) {
	sessions := pendingSession(t)
	h := NewHandler(LoadConfig(), sessions, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{SessionID: "s1", Accepted: true})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	require.NotNil(t, out.ViewGig)
	assert.Equal(t, "g1", out.ViewGig.ID)
	assert.Equal(t, browse.GateIdle, out.GateState)

	// a second accept has nothing to release
	_, err = h.Execute(context.Background(), &Input{SessionID: "s1", Accepted: true})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDisclaimerNotPending, stdErr.Code)
}

func TestHandler_Execute_Dismiss(t *testing.T) {
	sessions := pendingSession(t)
	h := NewHandler(LoadConfig(), sessions, nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{SessionID: "s1", Accepted: false})
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Nil(t, out.ViewGig)
	assert.Equal(t, browse.GateIdle, out.GateState)

	s, err := sessions.Open(context.Background(), "s1")
	require.NoError(t, err)
	_, selected := s.Flow.Selected()
	assert.False(t, selected)
}

func TestHandler_Execute_DismissWhenIdle(t *testing.T) {
	sessions := session.NewSessions(store.NewMemoryStore(), gigs, "static")
	h := NewHandler(LoadConfig(), sessions, nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, browse.GateIdle, out.GateState)
}
