package models

import "time"

// DockCategory classifies a file in a startup's dock.
type DockCategory string

const (
	DockCategoryPitch  DockCategory = "pitch"
	DockCategoryDemo   DockCategory = "demo"
	DockCategoryPatent DockCategory = "patent"
)

// Valid reports whether the category is one the dock accepts.
func (c DockCategory) Valid() bool {
	switch c {
	case DockCategoryPitch, DockCategoryDemo, DockCategoryPatent:
		return true
	}
	return false
}

// MaxDockFilesPerCategory caps how many files a startup can keep per category.
const MaxDockFilesPerCategory = 5

// DockFile is a file record in a startup's dock (pitch decks, demos, patents).
// The payload itself is opaque to this service; StorageKey identifies it.
type DockFile struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"not null;index:idx_dock_user_category" json:"user_id"`
	Category   DockCategory `gorm:"type:varchar(20);not null;index:idx_dock_user_category" json:"category"`
	FileName   string       `gorm:"not null" json:"file_name"`
	StorageKey string       `gorm:"uniqueIndex;not null" json:"storage_key"`
	Mime       string       `gorm:"not null" json:"mime"`
	SizeBytes  int64        `json:"size_bytes"`
	IsPrimary  bool         `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time    `json:"created_at"`

	Owner User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (DockFile) TableName() string {
	return "dock_files"
}
