// internal/models/events.go
package models

import "time"

const (
	EventJobSaved     = "job.saved"
	EventJobSubmitted = "job.submitted"
)

// JobEvent is published whenever a board appends or submits a job.
type JobEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	BoardID    string    `json:"boardId"`
	Job        Job       `json:"job"`
	OccurredAt time.Time `json:"occurredAt"`
}
