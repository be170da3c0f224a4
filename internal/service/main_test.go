package service

import (
	"fmt"
	"testing"
	"time"

	"venturelink/internal/models"
	"venturelink/internal/repository"

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

// newConnectionService wires a ConnectionService against the test database.
func newConnectionService(db *gorm.DB, allowRerequest bool) *ConnectionService {
	return NewConnectionService(
		repository.NewConnectionRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		allowRerequest,
	)
}

// newDockService wires a DockService against the test database.
func newDockService(db *gorm.DB) *DockService {
	return NewDockService(repository.NewDockRepository(db), repository.NewUserRepository(db))
}

// newNotificationService wires a NotificationService against the test database.
func newNotificationService(db *gorm.DB) *NotificationService {
	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
	)
}
