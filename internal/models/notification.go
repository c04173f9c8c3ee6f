// internal/models/notification.go
package models

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a user-facing message handed to the presentation layer.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// NotificationDelivery records one attempt to push a Notification out of
// process.
type NotificationDelivery struct {
	ID          string       `json:"id"`
	RecipientID string       `json:"recipientId"`
	Channels    []string     `json:"channels"` // "push", "email"
	Status      string       `json:"status"`   // "sent", "failed", "disabled"
	Payload     Notification `json:"payload"`
	SentAt      string       `json:"sentAt"`
}
