// internal/workers/creator/submit-existing-job/models.go
package submitexistingjob

import "gigboard/internal/models"

type Input struct {
	BoardID string     `json:"boardId"`
	Job     models.Job `json:"job"`

	// JobKey is the Zeebe job key; a redelivered key replays its first output.
	JobKey int64 `json:"-"`
}

type Output struct {
	Job            models.Job            `json:"job"`
	EventPublished bool                  `json:"eventPublished"`
	Notifications  []models.Notification `json:"notifications"`
	Navigation     models.View           `json:"navigation"`
}
