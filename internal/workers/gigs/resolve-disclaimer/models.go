// internal/workers/gigs/resolve-disclaimer/models.go
package resolvedisclaimer

import (
	"gigboard/internal/browse"
	"gigboard/internal/models"
)

type Input struct {
	SessionID string `json:"sessionId"`
	Accepted  bool   `json:"accepted"`
}

// Output carries ViewGig only when the disclaimer was accepted; the process
// routes to the gig view on its presence.
type Output struct {
	Accepted  bool             `json:"accepted"`
	ViewGig   *models.Gig      `json:"viewGig,omitempty"`
	GateState browse.GateState `json:"gateState"`
}

const (
	OutcomeAccepted  = "accepted"
	OutcomeDismissed = "dismissed"
)
