// internal/session/browse.go
package session

import (
	"context"
	stderrors "errors"

	"gigboard/internal/browse"
	"gigboard/internal/catalog"
	"gigboard/internal/common/errors"
	"gigboard/internal/models"
	"gigboard/internal/store"
)

// Browse is a worker's gig browser restored for one job. The callback fields
// record what the flow emitted while the job ran.
type Browse struct {
	ID     string
	Flow   *browse.Flow
	Viewed []models.Gig
	Views  []models.View
	Clicks int
}

// Sessions loads and saves browse flow snapshots on top of the live catalog.
type Sessions struct {
	store   store.Store
	catalog catalog.Catalog
	source  string
}

func NewSessions(s store.Store, c catalog.Catalog, source string) *Sessions {
	return &Sessions{store: s, catalog: c, source: source}
}

func (s *Sessions) Open(ctx context.Context, sessionID string) (*Browse, error) {
	gigs, err := s.catalog.ListGigs(ctx)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(s.source, err)
	}

	b := &Browse{ID: sessionID}
	b.Flow = browse.NewFlow(gigs, browse.Callbacks{
		OnViewGig:           func(g models.Gig) { b.Viewed = append(b.Viewed, g) },
		OnNotificationClick: func() { b.Clicks++ },
		OnNavigate:          func(v models.View) { b.Views = append(b.Views, v) },
	}, nil)

	key := store.SessionKey(sessionID)
	var state browse.State
	err = s.store.Load(ctx, key, &state)
	switch {
	case err == nil:
		b.Flow.Restore(state)
	case stderrors.Is(err, store.ErrNotFound):
	default:
		return nil, errors.NewFlowStateUnavailableError(key, err)
	}
	return b, nil
}

func (s *Sessions) Save(ctx context.Context, b *Browse) error {
	key := store.SessionKey(b.ID)
	if err := s.store.Save(ctx, key, b.Flow.State()); err != nil {
		return errors.NewFlowStateUnavailableError(key, err)
	}
	return nil
}
