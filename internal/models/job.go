// internal/models/job.go
package models

import "time"

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusSubmitted JobStatus = "submitted"
)

// Job is a posting created from a validated creator form. Field values are
// kept exactly as entered.
type Job struct {
	ID          int64     `json:"id"`
	Heading     string    `json:"heading"`
	Description string    `json:"description"`
	Task        string    `json:"task"`
	UstarPoints string    `json:"ustarPoints"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s JobStatus) Valid() bool {
	return s == JobStatusDraft || s == JobStatusSubmitted
}
