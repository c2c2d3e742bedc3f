package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/staybay/internal/connect"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/joshua-takyi/staybay/internal/seed"
)

func main() {
	if err := godotenv.Load(".env.local"); err != nil {
		slog.Warn("No .env.local file found, using environment variables")
	}

	listings := flag.Int("listings", 20, "number of listings to create")
	bookings := flag.Int("bookings", 50, "number of bookings to create")
	reviews := flag.Int("reviews", 30, "number of reviews to create")
	clearData := flag.Bool("clear", false, "delete existing listings, bookings, and reviews first")
	rngSeed := flag.Int64("seed", 0, "random seed for reproducible runs, 0 uses the clock")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := connect.PostgresConnect()
	if err != nil {
		logger.Error("Failed to connect to Postgres", "error", err)
		os.Exit(1)
	}
	defer connect.PostgresDisconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := connect.EnsureSchema(ctx, db, logger); err != nil {
		logger.Error("Failed to prepare database schema", "error", err)
		os.Exit(1)
	}

	source := *rngSeed
	if source == 0 {
		source = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(source))

	seeder := seed.NewSeeder(db, models.PostgresNewRepo(db), rng, logger)
	opts := seed.Options{
		Listings: *listings,
		Bookings: *bookings,
		Reviews:  *reviews,
		Clear:    *clearData,
	}
	if err := seeder.Run(ctx, opts); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Database seeding completed successfully")
}
