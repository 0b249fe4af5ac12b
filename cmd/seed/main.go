// Command seed fills the database with fake demo data.
package main

import (
	"context"
	"flag"
	"log"

	"soupbox/internal/config"
	"soupbox/internal/database"
	"soupbox/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	soupsPerUser := flag.Int("soups", defaults.SoupsPerUser, "Soups per user")
	commentsPerSoup := flag.Int("comments", defaults.CommentsPerSoup, "Comments per soup")
	starPercent := flag.Int("stars", defaults.StarPercent, "Chance (0-100) that a user stars a soup or comment")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, *randSeed)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx, seed.Options{
		Users:           *numUsers,
		SoupsPerUser:    *soupsPerUser,
		CommentsPerSoup: *commentsPerSoup,
		StarPercent:     *starPercent,
		MaxDays:         defaults.MaxDays,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d soups, %d comments, %d soup stars, %d comment stars",
		res.Users, res.Soups, res.Comments, res.SoupStars, res.CommentStars)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
