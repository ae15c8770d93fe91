package main

import (
	"context"
	"log"
	"os"

	"agentstudio-backend/store"

	"github.com/joho/godotenv"
)

// Creates the studio_state table and seeds the empty document for the
// postgres store variant.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	st, err := store.NewPostgresStore(context.Background(), connString)
	if err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	defer st.Close()

	log.Println("studio_state table created and seeded")
}
