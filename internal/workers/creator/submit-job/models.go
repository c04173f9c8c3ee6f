// internal/workers/creator/submit-job/models.go
package submitjob

import (
	"gigboard/internal/creator"
	"gigboard/internal/models"
)

type Input struct {
	BoardID string       `json:"boardId"`
	Form    creator.Form `json:"form"`
}

// Output opens the confirmation step. The process shows the confirmation
// as a user task and completes it through confirm-job-submission.
type Output struct {
	ConfirmPending bool                  `json:"confirmPending"`
	Form           creator.Form          `json:"form"`
	Notifications  []models.Notification `json:"notifications"`
}
