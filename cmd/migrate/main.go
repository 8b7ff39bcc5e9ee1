package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS notifications CASCADE`,
		`DROP TABLE IF EXISTS votes CASCADE`,
		`DROP TABLE IF EXISTS poll_options CASCADE`,
		`DROP TABLE IF EXISTS polls CASCADE`,
		`DROP TABLE IF EXISTS campaigns CASCADE`,
		`DROP TABLE IF EXISTS categories CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Users
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(150) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			notification_enabled BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Categories and campaigns group polls for browsing
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			title VARCHAR(100) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS campaigns (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Polls
		`CREATE TABLE IF NOT EXISTS polls (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
			campaign_id UUID REFERENCES campaigns(id) ON DELETE SET NULL,
			expires_at TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT true,
			allow_multiple_votes BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Options carry the denormalized counter that results are read from
		`CREATE TABLE IF NOT EXISTS poll_options (
			id UUID PRIMARY KEY,
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			text VARCHAR(255) NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0,
			vote_count INTEGER NOT NULL DEFAULT 0,
			UNIQUE(poll_id, text)
		)`,

		// Votes are the append-only ledger. single_vote is stamped from the
		// poll's allow_multiple_votes at insert time so the partial unique
		// indexes below only bite on polls that restrict voters to one vote.
		`CREATE TABLE IF NOT EXISTS votes (
			id UUID PRIMARY KEY,
			poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			option_id UUID NOT NULL REFERENCES poll_options(id) ON DELETE CASCADE,
			voter_user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			voter_ip INET,
			single_vote BOOLEAN NOT NULL DEFAULT true,
			voted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (voter_user_id IS NOT NULL OR voter_ip IS NOT NULL)
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS votes_user_dedup
			ON votes(poll_id, voter_user_id)
			WHERE voter_user_id IS NOT NULL AND single_vote`,

		`CREATE UNIQUE INDEX IF NOT EXISTS votes_ip_dedup
			ON votes(poll_id, voter_ip)
			WHERE voter_user_id IS NULL AND single_vote`,

		// Notifications
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			actor_user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			verb VARCHAR(50) NOT NULL,
			target_type VARCHAR(50) NOT NULL,
			target_id UUID NOT NULL,
			description TEXT NOT NULL,
			link VARCHAR(255),
			read BOOLEAN NOT NULL DEFAULT false,
			emailed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_polls_created_at ON polls(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_polls_category_id ON polls(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_polls_campaign_id ON polls(campaign_id)`,
		`CREATE INDEX IF NOT EXISTS idx_poll_options_poll_id ON poll_options(poll_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_option_id ON votes(option_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		INSERT INTO categories (id, title, description) VALUES
		(gen_random_uuid(), 'Technology', 'Programming languages, tools, and platforms'),
		(gen_random_uuid(), 'Entertainment', 'Movies, music, and games'),
		(gen_random_uuid(), 'Sports', 'Teams, matches, and athletes'),
		(gen_random_uuid(), 'Food', 'Dishes, restaurants, and recipes')
		ON CONFLICT (title) DO NOTHING
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	fmt.Println("  Seeded 4 categories")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
