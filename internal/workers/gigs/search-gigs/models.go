// internal/workers/gigs/search-gigs/models.go
package searchgigs

import (
	"gigboard/internal/browse"
	"gigboard/internal/models"
)

type Input struct {
	SessionID  string `json:"sessionId"`
	SearchTerm string `json:"searchTerm"`

	// NotificationCount is the unread count the process already holds; it is
	// echoed in the header and defaults to 0.
	NotificationCount *int `json:"notificationCount,omitempty"`
}

// Result is one gig card with its highlighted fields, both as segments and
// as escaped HTML with <mark> around matches.
type Result struct {
	Gig             models.Gig       `json:"gig"`
	Title           []browse.Segment `json:"title"`
	Description     []browse.Segment `json:"description"`
	TitleHTML       string           `json:"titleHtml"`
	DescriptionHTML string           `json:"descriptionHtml"`
}

type Output struct {
	SearchTerm        string           `json:"searchTerm"`
	Total             int              `json:"total"`
	Results           []Result         `json:"results"`
	GateState         browse.GateState `json:"gateState"`
	NotificationCount int              `json:"notificationCount"`
}
