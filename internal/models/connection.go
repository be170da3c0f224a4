package models

import (
	"time"

	"gorm.io/gorm"
)

// ConnectionStatus represents the status of a connection between two users.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a request awaiting the receiver's response.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an established connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates the receiver declined the request.
	ConnectionStatusRejected ConnectionStatus = "rejected"
	// ConnectionStatusBlocked indicates one party blocked the other.
	ConnectionStatusBlocked ConnectionStatus = "blocked"
)

// Connection represents a directed relationship proposal between two users.
// Direction (sender vs receiver) is preserved so the pending-received and
// pending-sent sets can be distinguished; PairMinID/PairMaxID normalize the
// pair so the database enforces at most one record per unordered pair no
// matter who initiated.
type Connection struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	SenderID   uint             `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint             `gorm:"not null;index" json:"receiver_id"`
	PairMinID  uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	PairMaxID  uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	Status     ConnectionStatus `gorm:"type:varchar(20);default:'pending';index:idx_connections_status" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeSave keeps the normalized pair columns in sync with the directed pair.
func (conn *Connection) BeforeSave(_ *gorm.DB) error {
	conn.PairMinID, conn.PairMaxID = conn.SenderID, conn.ReceiverID
	if conn.PairMinID > conn.PairMaxID {
		conn.PairMinID, conn.PairMaxID = conn.PairMaxID, conn.PairMinID
	}
	return nil
}

// RoleOf returns the role of userID relative to this connection:
// "sender", "receiver", or "none".
func (conn *Connection) RoleOf(userID uint) string {
	switch userID {
	case conn.SenderID:
		return "sender"
	case conn.ReceiverID:
		return "receiver"
	default:
		return "none"
	}
}

// ConnectionSummary is one row of a user's connection list, enriched with the
// counterparty's display info.
type ConnectionSummary struct {
	ConnectionID   uint             `json:"connection_id"`
	Status         ConnectionStatus `json:"status"`
	CounterpartyID uint             `json:"user_id"`
	Username       string           `json:"username"`
	UserType       UserType         `json:"user_type"`
	DisplayName    string           `json:"display_name"`
	Avatar         string           `json:"avatar,omitempty"`
}

// PendingRequest is one row of a user's pending-received request list.
type PendingRequest struct {
	ConnectionID uint      `json:"connection_id"`
	SenderID     uint      `json:"sender_id"`
	Username     string    `json:"username"`
	UserType     UserType  `json:"user_type"`
	DisplayName  string    `json:"display_name"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
