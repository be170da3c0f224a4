// Command main runs the database seeder for VentureLink.
package main

import (
	"flag"
	"log"

	"venturelink/internal/config"
	"venturelink/internal/database"
	"venturelink/internal/seed"
)

func main() {
	// Parse command line flags
	numStartups := flag.Int("startups", 15, "Number of startup accounts to create")
	numInvestors := flag.Int("investors", 10, "Number of investor accounts to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d startups, %d investors, %d posts, clean=%v\n",
		*numStartups, *numInvestors, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumStartups:  *numStartups,
		NumInvestors: *numInvestors,
		NumPosts:     *numPosts,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All seeded users have the password: DemoPassword12!")
}
