// seed inserts two test users and a few conversations into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/chat-auth-service/internal/hash"
	"github.com/ErlanBelekov/chat-auth-service/internal/infrastructure/postgres"
)

const seedPassword = "password123"

var conversations = []string{
	"Exam prep questions",
	"Lab report draft",
	"New Conversation",
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	passwordHash, err := hash.New().Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Verified user with conversations.
	var verifiedID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, is_verified, last_login)
		VALUES ('Seed Verified', 'verified@test.local', $1, TRUE, NOW())
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		passwordHash,
	).Scan(&verifiedID)
	if err != nil {
		log.Fatalf("insert verified user: %v", err)
	}

	for _, title := range conversations {
		if _, err := pool.Exec(ctx, `
			INSERT INTO conversations (user_id, title) VALUES ($1, $2)`,
			verifiedID, title,
		); err != nil {
			log.Fatalf("insert conversation %q: %v", title, err)
		}
	}

	// Unverified user for exercising the OTP flow.
	if _, err := pool.Exec(ctx, `
		INSERT INTO users (name, email, password_hash, is_verified)
		VALUES ('Seed Unverified', 'unverified@test.local', $1, FALSE)
		ON CONFLICT (email) DO NOTHING`,
		passwordHash,
	); err != nil {
		log.Fatalf("insert unverified user: %v", err)
	}

	fmt.Printf("seeded 2 users (password %q) and %d conversations\n", seedPassword, len(conversations))
}
