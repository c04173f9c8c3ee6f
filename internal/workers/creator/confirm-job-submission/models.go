// internal/workers/creator/confirm-job-submission/models.go
package confirmjobsubmission

import "gigboard/internal/models"

type Input struct {
	BoardID   string `json:"boardId"`
	Confirmed bool   `json:"confirmed"`

	// JobKey is the Zeebe job key; a redelivered key replays its first output.
	JobKey int64 `json:"-"`
}

type Output struct {
	Confirmed      bool                  `json:"confirmed"`
	Job            *models.Job           `json:"job,omitempty"`
	EventPublished bool                  `json:"eventPublished"`
	Notifications  []models.Notification `json:"notifications"`
	Navigation     models.View           `json:"navigation"`
}
