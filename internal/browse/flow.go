// internal/browse/flow.go
package browse

import (
	"errors"
	"fmt"

	"gigboard/internal/models"
)

var ErrInvalidView = errors.New("invalid view")

// Callbacks are the flow's outbound events. Any of them may be nil.
type Callbacks struct {
	OnViewGig           func(gig models.Gig)
	OnNotificationClick func()
	OnNavigate          func(view models.View)
}

// NotificationCounter supplies the unread indicator shown in the header.
type NotificationCounter interface {
	UnreadCount() int
}

// Card is one rendered search result.
type Card struct {
	Gig         models.Gig `json:"gig"`
	Title       []Segment  `json:"title"`
	Description []Segment  `json:"description"`
}

// State is the serialisable snapshot of a Flow. Gigs are not stored; they
// come from the catalog on every load.
type State struct {
	SearchTerm string      `json:"searchTerm"`
	Gate       GateState   `json:"gate"`
	Selected   *models.Gig `json:"selected,omitempty"`
}

// Flow is the worker-side gig browser. It is not safe for concurrent use.
type Flow struct {
	gigs     []models.Gig
	term     string
	filtered []models.Gig
	gate     Gate

	callbacks Callbacks
	counter   NotificationCounter
}

func NewFlow(gigs []models.Gig, callbacks Callbacks, counter NotificationCounter) *Flow {
	f := &Flow{callbacks: callbacks, counter: counter}
	f.SetGigs(gigs)
	return f
}

// SetGigs replaces the catalog and re-applies the current term.
func (f *Flow) SetGigs(gigs []models.Gig) {
	f.gigs = append([]models.Gig(nil), gigs...)
	f.filtered = Search(f.gigs, f.term)
}

// SetSearchTerm recomputes the filtered list from scratch.
func (f *Flow) SetSearchTerm(term string) {
	f.term = term
	f.filtered = Search(f.gigs, term)
}

func (f *Flow) SearchTerm() string     { return f.term }
func (f *Flow) Gigs() []models.Gig     { return append([]models.Gig(nil), f.gigs...) }
func (f *Flow) Filtered() []models.Gig { return append([]models.Gig(nil), f.filtered...) }
func (f *Flow) GateState() GateState   { return f.gate.State() }

// Cards returns the filtered gigs with highlighted title and description.
func (f *Flow) Cards() []Card {
	cards := make([]Card, 0, len(f.filtered))
	for _, g := range f.filtered {
		cards = append(cards, Card{
			Gig:         g,
			Title:       Highlight(g.Title, f.term),
			Description: Highlight(g.Description, f.term),
		})
	}
	return cards
}

func (f *Flow) Selected() (models.Gig, bool) {
	return f.gate.Selected()
}

// SelectForView opens the disclaimer for gig.
func (f *Flow) SelectForView(gig models.Gig) {
	f.gate.Select(gig)
}

func (f *Flow) DismissDisclaimer() {
	f.gate.Dismiss()
}

// AcceptDisclaimer fires OnViewGig once with the selected gig.
func (f *Flow) AcceptDisclaimer() (models.Gig, error) {
	gig, err := f.gate.Accept()
	if err != nil {
		return models.Gig{}, err
	}
	if f.callbacks.OnViewGig != nil {
		f.callbacks.OnViewGig(gig)
	}
	return gig, nil
}

func (f *Flow) ClickNotification() {
	if f.callbacks.OnNotificationClick != nil {
		f.callbacks.OnNotificationClick()
	}
}

// Navigate emits a header navigation intent to the worker views.
func (f *Flow) Navigate(view models.View) error {
	if view != models.ViewJobs && view != models.ViewMyJobs {
		return fmt.Errorf("%w: %s", ErrInvalidView, view)
	}
	if f.callbacks.OnNavigate != nil {
		f.callbacks.OnNavigate(view)
	}
	return nil
}

// SetCounter replaces the unread-notification source.
func (f *Flow) SetCounter(counter NotificationCounter) {
	f.counter = counter
}

func (f *Flow) NotificationCount() int {
	if f.counter == nil {
		return 0
	}
	return f.counter.UnreadCount()
}

func (f *Flow) State() State {
	s := State{SearchTerm: f.term, Gate: f.gate.State()}
	if gig, ok := f.gate.Selected(); ok {
		s.Selected = &gig
	}
	return s
}

// Restore applies a stored snapshot on top of the current catalog.
func (f *Flow) Restore(s State) {
	f.SetSearchTerm(s.SearchTerm)
	f.gate = Gate{}
	if s.Gate == GatePendingAck && s.Selected != nil {
		f.gate.Select(*s.Selected)
	}
}

// FindGig looks a gig up in the catalog by id.
func (f *Flow) FindGig(id string) (models.Gig, bool) {
	for _, g := range f.gigs {
		if g.ID == id {
			return g, true
		}
	}
	return models.Gig{}, false
}

// CountFunc adapts a function to NotificationCounter.
type CountFunc func() int

func (c CountFunc) UnreadCount() int { return c() }
