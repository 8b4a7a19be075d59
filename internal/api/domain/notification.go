package domain

import "time"

// Notification type tags.
const (
	NotificationJobClaimed   = "job_claimed"
	NotificationJobApproved  = "job_approved"
	NotificationJobWithdrawn = "job_withdrawn"
)

// Notification is created as a side effect of claim/approve/withdraw
// transitions and delivered asynchronously by the notifier service.
type Notification struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Message     string     `db:"message" json:"message"`
	Type        string     `db:"type" json:"type"`
	Read        bool       `db:"read" json:"read"`
	DeliveredAt *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// NotificationEvent is the message published to RabbitMQ when a notification
// row is created.
type NotificationEvent struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Type           string `json:"type"`
}
