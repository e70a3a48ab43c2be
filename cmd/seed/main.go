// Command main runs the database seeder.
package main

import (
	"flag"
	"log"

	"kanban/internal/config"
	"kanban/internal/database"
	"kanban/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numProjects := flag.Int("projects", 10, "Number of projects to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumProjects: *numProjects,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! All test users have the password: password123")
}
