// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType classifies an account on the platform.
type UserType string

const (
	// UserTypeStartup is a startup founder account.
	UserTypeStartup UserType = "startup"
	// UserTypeInvestor is an investor account.
	UserTypeInvestor UserType = "investor"
	// UserTypeAdmin is a platform operator account.
	UserTypeAdmin UserType = "admin"
)

// CanConnect reports whether accounts of this type participate in the
// connection workflow. Only startups and investors can connect.
func (t UserType) CanConnect() bool {
	return t == UserTypeStartup || t == UserTypeInvestor
}

// User represents an account in the VentureLink platform.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserType  UserType       `gorm:"type:varchar(20);not null;index" json:"user_type"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
