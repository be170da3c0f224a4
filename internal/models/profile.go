package models

import "time"

// StartupProfile holds the public-facing details of a startup account.
type StartupProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	Pitch       string    `gorm:"type:text" json:"pitch"`
	Website     string    `json:"website,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Logo        []byte    `gorm:"type:bytes" json:"-"`
	LogoMime    string    `json:"logo_mime,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (StartupProfile) TableName() string {
	return "startup_profiles"
}

// InvestorProfile holds the public-facing details of an investor account.
type InvestorProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Firm      string    `json:"firm,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (InvestorProfile) TableName() string {
	return "investor_profiles"
}

// DisplayInfo is the minimal projection other features use to render a user:
// a display name and an avatar/logo reference. Absence of a profile degrades
// to the raw username rather than failing the caller.
type DisplayInfo struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}
