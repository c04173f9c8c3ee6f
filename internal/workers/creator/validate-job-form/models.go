// internal/workers/creator/validate-job-form/models.go
package validatejobform

import (
	"gigboard/internal/creator"
	"gigboard/internal/models"
)

type Input struct {
	Form creator.Form `json:"form"`
}

type Output struct {
	Valid         bool                  `json:"valid"`
	FormErrors    creator.FormErrors    `json:"formErrors"`
	InvalidFields []string              `json:"invalidFields"`
	Notifications []models.Notification `json:"notifications"`
}
