// internal/workers/communication/send-user-notification/models.go
package sendusernotification

import "gigboard/internal/models"

type Input struct {
	RecipientID    string                `json:"recipientId"`
	RecipientEmail string                `json:"recipientEmail,omitempty"`
	Notifications  []models.Notification `json:"notifications"`
}

type Output struct {
	Deliveries []models.NotificationDelivery `json:"deliveries"`
	Sent       int                           `json:"sent"`
	Failed     int                           `json:"failed"`
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)
