package repository

import (
	"fmt"
	"testing"
	"time"

	"venturelink/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.StartupProfile{},
		&models.InvestorProfile{},
		&models.Connection{},
		&models.Notification{},
		&models.DockFile{},
		&models.Post{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// createTestUser persists a user with a unique username and email.
func createTestUser(t *testing.T, db *gorm.DB, prefix string, userType models.UserType) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", prefix, ts),
		Email:    fmt.Sprintf("%s_%d@example.com", prefix, ts),
		Password: "hashed",
		UserType: userType,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
