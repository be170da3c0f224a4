package models

import "time"

// Notification type tags used by the connection workflow.
const (
	NotificationTypeConnectionRequest  = "connection_request"
	NotificationTypeConnectionAccepted = "connection_accepted"
	NotificationTypeConnectionRejected = "connection_rejected"
)

// NotificationState mirrors the state of the connection a request notification
// points at, filtered to the values the feed cares about. A nil state means the
// notification is not connection-state tracked.
type NotificationState string

const (
	NotificationStatePending   NotificationState = "pending"
	NotificationStateAccepted  NotificationState = "accepted"
	NotificationStateRejected  NotificationState = "rejected"
	NotificationStateCancelled NotificationState = "cancelled"
)

// Notification is a record of an event relevant to one user, optionally
// correlated to a connection. Notifications are superseded (IsActive cleared,
// state set to cancelled) rather than deleted, so the feed stays auditable.
type Notification struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	UserID          uint               `gorm:"not null;index" json:"user_id"`
	SenderID        *uint              `gorm:"index" json:"sender_id,omitempty"`
	ConnectionID    *uint              `json:"connection_id,omitempty"`
	Type            string             `gorm:"type:varchar(50);not null" json:"type"`
	Message         string             `json:"message"`
	IsRead          bool               `gorm:"default:false" json:"is_read"`
	IsActive        bool               `gorm:"default:true" json:"is_active"`
	ConnectionState *NotificationState `gorm:"type:varchar(20)" json:"connection_state,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// StatePtr is a convenience for building the nullable state column.
func StatePtr(s NotificationState) *NotificationState {
	return &s
}

// NotificationView is a feed entry enriched with sender display info and the
// resolved status of the correlated connection (when one can be resolved).
type NotificationView struct {
	Notification
	SenderUsername   string            `json:"sender_username,omitempty"`
	SenderUserType   UserType          `json:"sender_user_type,omitempty"`
	SenderName       string            `json:"sender_name,omitempty"`
	SenderAvatar     string            `json:"sender_avatar,omitempty"`
	ConnectionStatus *ConnectionStatus `json:"connection_status,omitempty"`
}
