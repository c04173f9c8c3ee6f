// internal/workers/gigs/select-gig/models.go
package selectgig

import (
	"gigboard/internal/browse"
	"gigboard/internal/models"
)

type Input struct {
	SessionID string `json:"sessionId"`
	GigID     string `json:"gigId"`
}

type Output struct {
	Gig        models.Gig       `json:"gig"`
	GateState  browse.GateState `json:"gateState"`
	Disclaimer string           `json:"disclaimer"`
}
