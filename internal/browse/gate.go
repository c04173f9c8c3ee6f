// internal/browse/gate.go
package browse

import (
	"errors"

	"gigboard/internal/models"
)

type GateState string

const (
	GateIdle       GateState = "idle"
	GatePendingAck GateState = "pendingAck"
)

var ErrNotPendingAck = errors.New("no gig awaiting acknowledgement")

// DisclaimerText is shown before any gig details are opened.
const DisclaimerText = "By engaging in any work opportunities through this portal, you acknowledge and agree that your participation is entirely voluntary and will not interfere with your regular duties or obligations at your current place of employment. It is your sole responsibility to ensure that your involvement in these projects does not conflict with any employment agreements, company policies, or contractual obligations. The portal and its administrators assume no responsibility for any consequences arising from your work commitments outside of your primary job."

// Gate holds a selected gig until the worker accepts or dismisses the
// disclaimer.
type Gate struct {
	selected *models.Gig
}

func (g *Gate) State() GateState {
	if g.selected == nil {
		return GateIdle
	}
	return GatePendingAck
}

// Selected returns the gig awaiting acknowledgement.
func (g *Gate) Selected() (models.Gig, bool) {
	if g.selected == nil {
		return models.Gig{}, false
	}
	return *g.selected, true
}

// Select moves the gate to pendingAck. A second selection replaces the
// first.
func (g *Gate) Select(gig models.Gig) {
	g.selected = &gig
}

// Dismiss returns to idle without releasing the gig.
func (g *Gate) Dismiss() {
	g.selected = nil
}

// Accept returns to idle and releases the selected gig.
func (g *Gate) Accept() (models.Gig, error) {
	if g.selected == nil {
		return models.Gig{}, ErrNotPendingAck
	}
	gig := *g.selected
	g.selected = nil
	return gig, nil
}
