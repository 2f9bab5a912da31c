package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hallbook/internal/events"
	"hallbook/internal/seats"
	"hallbook/internal/shared/config"
	"hallbook/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Hallbook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"pending_reservations",
		"tickets",
		"seats",
		"events",
		"site_stats",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates sample events, each with the default seat map
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	eventService := events.NewService(events.NewRepository(s.db.GetPostgreSQL()))
	seatService := seats.NewService(seats.NewRepository(s.db.GetPostgreSQL()))
	eventService.SetSeatService(seatService)

	samples := []events.CreateEventRequest{
		{
			Name:        "Autumn Jazz Evening",
			Date:        time.Now().AddDate(0, 0, 14),
			Description: "An intimate evening of classic and modern jazz with the city quartet.",
			ImageURL:    "jazz.jpg",
		},
		{
			Name:        "Stand-up Comedy Night",
			Date:        time.Now().AddDate(0, 0, 30),
			Description: "Four headliners, one stage, no mercy.",
			ImageURL:    "comedy.jpg",
		},
		{
			Name:        "Chamber Orchestra: Winter Program",
			Date:        time.Now().AddDate(0, 2, 0),
			Description: "Seasonal favourites performed by the regional chamber orchestra.",
		},
	}

	for _, req := range samples {
		created, err := eventService.CreateEvent(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to seed event %q: %w", req.Name, err)
		}
		fmt.Printf("  • %s (%s)\n", created.Name, created.ID)
	}

	return nil
}
