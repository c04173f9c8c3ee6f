// internal/workers/gigs/browse-navigation/models.go
package browsenavigation

import "gigboard/internal/models"

const (
	ActionClickNotification = "clickNotification"
	ActionNavigate          = "navigate"
)

// Input carries one header interaction. View is read only for navigate.
type Input struct {
	SessionID string      `json:"sessionId"`
	Action    string      `json:"action"`
	View      models.View `json:"view,omitempty"`
}

type Output struct {
	NotificationClicked bool        `json:"notificationClicked"`
	Navigation          models.View `json:"navigation"`
}
