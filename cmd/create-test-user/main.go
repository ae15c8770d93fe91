package main

import (
	"context"
	"log"
	"os"

	"agentstudio-backend/service"
	"agentstudio-backend/store"

	"github.com/joho/godotenv"
)

// Seeds a demo account into the configured store and prints its token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "demo@example.com"
	}
	password := os.Getenv("TEST_USER_PASSWORD")
	if password == "" {
		password = "demo1234"
	}

	ctx := context.Background()
	st, err := store.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	auth := service.NewAuthService(service.WithAuthStore(st))
	user, err := auth.Register(ctx, email, password)
	if err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	log.Printf("Test user created: %s (id %s)", user.Email, user.ID)
	log.Printf("Bearer token: %s", user.Token)
}
