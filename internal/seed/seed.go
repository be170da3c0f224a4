// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"venturelink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumStartups  int
	NumInvestors int
	NumPosts     int
	ShouldClean  bool
}

var industries = []string{
	"fintech", "healthtech", "edtech", "climate", "devtools",
	"logistics", "biotech", "consumer", "security", "ai",
}

// Run seeds the database with demo users, profiles, connections,
// notifications, and posts.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumStartups <= 0 {
		opts.NumStartups = 15
	}
	if opts.NumInvestors <= 0 {
		opts.NumInvestors = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("failed to clean database: %w", err)
		}
	}

	// All seeded accounts share one password to keep local login easy.
	hashed, err := bcrypt.GenerateFromPassword([]byte("DemoPassword12!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	startups, err := seedStartups(db, opts.NumStartups, string(hashed), r)
	if err != nil {
		return err
	}
	investors, err := seedInvestors(db, opts.NumInvestors, string(hashed))
	if err != nil {
		return err
	}

	if err := seedConnections(db, startups, investors, r); err != nil {
		return err
	}
	if err := seedPosts(db, startups, investors, opts.NumPosts, r); err != nil {
		return err
	}
	if err := seedDockFiles(db, startups, r); err != nil {
		return err
	}

	log.Printf("Seeded %d startups, %d investors, %d posts",
		len(startups), len(investors), opts.NumPosts)
	return nil
}

func clean(db *gorm.DB) error {
	tables := []string{
		"notifications", "connections", "dock_files", "posts",
		"startup_profiles", "investor_profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedStartups(db *gorm.DB, n int, password string, r *rand.Rand) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		company := gofakeit.Company()
		user := models.User{
			Username: fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("startup%d_%s", i, gofakeit.Email()),
			Password: password,
			UserType: models.UserTypeStartup,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create startup user: %w", err)
		}

		profile := models.StartupProfile{
			UserID:      user.ID,
			CompanyName: company,
			Pitch:       gofakeit.Paragraph(1, 3, 8, " "),
			Website:     gofakeit.URL(),
			Industry:    industries[r.Intn(len(industries))],
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create startup profile: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func seedInvestors(db *gorm.DB, n int, password string) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s_inv%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("investor%d_%s", i, gofakeit.Email()),
			Password: password,
			UserType: models.UserTypeInvestor,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create investor user: %w", err)
		}

		profile := models.InvestorProfile{
			UserID: user.ID,
			Name:   gofakeit.Name(),
			Firm:   gofakeit.Company() + " Capital",
			Bio:    gofakeit.Paragraph(1, 2, 8, " "),
			Avatar: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create investor profile: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// seedConnections creates a mesh of requests in various states, with a
// matching notification for each pending or resolved request.
func seedConnections(db *gorm.DB, startups, investors []models.User, r *rand.Rand) error {
	statuses := []models.ConnectionStatus{
		models.ConnectionStatusPending,
		models.ConnectionStatusAccepted,
		models.ConnectionStatusAccepted,
		models.ConnectionStatusRejected,
	}

	for _, startup := range startups {
		// Each startup reaches out to a few random investors.
		perStartup := 1 + r.Intn(3)
		seen := make(map[uint]struct{})
		for j := 0; j < perStartup && j < len(investors); j++ {
			investor := investors[r.Intn(len(investors))]
			if _, dup := seen[investor.ID]; dup {
				continue
			}
			seen[investor.ID] = struct{}{}

			status := statuses[r.Intn(len(statuses))]
			conn := models.Connection{
				SenderID:   startup.ID,
				ReceiverID: investor.ID,
				Status:     status,
			}
			if err := db.Create(&conn).Error; err != nil {
				return fmt.Errorf("failed to create connection: %w", err)
			}

			state := models.NotificationState(status)
			active := status == models.ConnectionStatusPending
			notif := models.Notification{
				UserID:          investor.ID,
				SenderID:        &startup.ID,
				ConnectionID:    &conn.ID,
				Type:            models.NotificationTypeConnectionRequest,
				Message:         fmt.Sprintf("You have a new connection request from %s", startup.Username),
				IsRead:          !active && r.Intn(2) == 0,
				IsActive:        active,
				ConnectionState: &state,
			}
			if err := db.Create(&notif).Error; err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}
	}
	return nil
}

func seedPosts(db *gorm.DB, startups, investors []models.User, n int, r *rand.Rand) error {
	all := append(append([]models.User{}, startups...), investors...)
	if len(all) == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		author := all[r.Intn(len(all))]
		post := models.Post{
			UserID:  author.ID,
			Title:   gofakeit.Sentence(6),
			Content: gofakeit.Paragraph(2, 4, 10, "\n"),
		}
		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(r.Intn(24))*time.Hour)
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
	}
	return nil
}

func seedDockFiles(db *gorm.DB, startups []models.User, r *rand.Rand) error {
	categories := []models.DockCategory{
		models.DockCategoryPitch,
		models.DockCategoryDemo,
		models.DockCategoryPatent,
	}
	for _, startup := range startups {
		for _, category := range categories {
			count := r.Intn(3)
			for k := 0; k < count; k++ {
				file := models.DockFile{
					UserID:     startup.ID,
					Category:   category,
					FileName:   fmt.Sprintf("%s-%d.pdf", category, k+1),
					StorageKey: gofakeit.UUID(),
					Mime:       "application/pdf",
					SizeBytes:  int64(10000 + r.Intn(5000000)),
					IsPrimary:  k == 0,
				}
				if err := db.Create(&file).Error; err != nil {
					return fmt.Errorf("failed to create dock file: %w", err)
				}
			}
		}
	}
	return nil
}
