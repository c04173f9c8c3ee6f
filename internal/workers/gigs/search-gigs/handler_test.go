package searchgigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/browse"
	"gigboard/internal/catalog"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/models"
	"gigboard/internal/session"
	"gigboard/internal/store"
)

var gigs = catalog.Static{
	{ID: "g1", Title: "Website Redesign", Description: "Refresh a small <b>bakery</b> site"},
	{ID: "g2", Title: "Logo design", Description: "Vector logo for a cafe"},
	{ID: "g3", Title: "Dog walking", Description: "Weekday mornings"},
}

type brokenCatalog struct{}

func (brokenCatalog) ListGigs(context.Context) ([]models.Gig, error) {
	return nil, catalog.ErrCatalogQuery
}

func newHandler(t *testing.T, c catalog.Catalog) (*Handler, *session.Sessions) {
	t.Helper()
	sessions := session.NewSessions(store.NewMemoryStore(), c, "static")
	return NewHandler(LoadConfig(), sessions, nil, logger.NewTestLogger(t)), sessions
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "empty term returns all", term: "", wantIDs: []string{"g1", "g2", "g3"}},
		{name: "case insensitive title", term: "DESIGN", wantIDs: []string{"g1", "g2"}},
		{name: "description match", term: "cafe", wantIDs: []string{"g2"}},
		{name: "no match", term: "plumbing", wantIDs: []string{}},
		{name: "whitespace is literal", term: " ", wantIDs: []string{"g1", "g2", "g3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t, gigs)
			unread := 2
			out, err := h.Execute(context.Background(), &Input{SessionID: "s1", SearchTerm: tt.term, NotificationCount: &unread})
			require.NoError(t, err)

			ids := []string{}
			for _, r := range out.Results {
				ids = append(ids, r.Gig.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), out.Total)
			assert.Equal(t, tt.term, out.SearchTerm)
			assert.Equal(t, browse.GateIdle, out.GateState)
			assert.Equal(t, 2, out.NotificationCount)
		})
	}
}

func TestHandler_Execute_Highlights(t *testing.T) {
	h, sessions := newHandler(t, gigs)

	out, err := h.Execute(context.Background(), &Input{SessionID: "s1", SearchTerm: "bakery"})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)

	r := out.Results[0]
	assert.Equal(t, []browse.Segment{{Text: "Website Redesign"}}, r.Title)
	assert.Equal(t, "Website Redesign", r.TitleHTML)
	assert.Equal(t, "Refresh a small &lt;b&gt;<mark>bakery</mark>&lt;/b&gt; site", r.DescriptionHTML)

	s, err := sessions.Open(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "bakery", s.Flow.SearchTerm())
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, _ := newHandler(t, brokenCatalog{})

	_, err := h.Execute(context.Background(), &Input{SessionID: "s1", SearchTerm: "x"})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCatalogQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)

	_, err = h.Execute(context.Background(), &Input{SearchTerm: "x"})
	stdErr, ok = errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}

func TestHandler_Execute_NotificationCountDefaultsToZero(t *testing.T) {
	h, _ := newHandler(t, gigs)

	out, err := h.Execute(context.Background(), &Input{SessionID: "s1", SearchTerm: "logo"})
	require.NoError(t, err)
	assert.Zero(t, out.NotificationCount)

	unread := 5
	out, err = h.Execute(context.Background(), &Input{SessionID: "s1", SearchTerm: "logo", NotificationCount: &unread})
	require.NoError(t, err)
	assert.Equal(t, 5, out.NotificationCount)
}
