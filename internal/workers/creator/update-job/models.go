// internal/workers/creator/update-job/models.go
package updatejob

import "gigboard/internal/models"

// Input carries the full replacement job. It is stored as given, without
// re-validation.
type Input struct {
	BoardID string     `json:"boardId"`
	Job     models.Job `json:"job"`
}

type Output struct {
	Job           models.Job            `json:"job"`
	Notifications []models.Notification `json:"notifications"`
}
