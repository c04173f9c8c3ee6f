// internal/workers/creator/save-job-draft/models.go
package savejobdraft

import (
	"gigboard/internal/creator"
	"gigboard/internal/models"
)

type Input struct {
	BoardID string       `json:"boardId"`
	Form    creator.Form `json:"form"`

	// JobKey is the Zeebe job key; a redelivered key replays its first output.
	JobKey int64 `json:"-"`
}

type Output struct {
	Job            models.Job            `json:"job"`
	JobCount       int                   `json:"jobCount"`
	EventPublished bool                  `json:"eventPublished"`
	Notifications  []models.Notification `json:"notifications"`
	Navigation     models.View           `json:"navigation"`
}
