// internal/models/gig.go
package models

type Gig struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
