package main

import (
	"context"
	"log"
	"os"

	"agentstudio-backend/handlers"
	"agentstudio-backend/provider"
	"agentstudio-backend/service"
	"agentstudio-backend/storage"
	"agentstudio-backend/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	// Initialize the state store (file by default; memory or postgres via
	// STORE_DRIVER)
	st, err := store.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to initialize store: ", err)
	}
	defer st.Close()
	log.Println("Store initialized")

	// Initialize the snapshot archive
	archive, err := storage.NewArchiveFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize snapshot archive: %v", err)
	}
	log.Println("Snapshot archive initialized")

	// Pick the AI provider: real Gemini probes when a key is configured,
	// otherwise the simulated handshake
	var ai provider.AIProvider
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		ai = provider.NewGeminiAIProvider(key)
		log.Println("Gemini AI provider initialized")
	} else {
		ai = provider.NewMockAIProvider()
		log.Println("Warning: GEMINI_API_KEY not set, using simulated AI provider")
	}

	// Initialize services
	authService := service.NewAuthService(
		service.WithAuthStore(st),
		service.WithAutoRegister(os.Getenv("AUTH_AUTO_REGISTER") == "1"),
	)
	agentService := service.NewAgentService(service.WithAgentStore(st))
	walletService := service.NewWalletService(service.WithWalletStore(st))
	settingsService := service.NewSettingsService(
		service.WithSettingsStore(st),
		service.WithAIProvider(ai),
	)

	if authService.AutoRegister() {
		log.Println("Login policy: auto-register enabled")
	}

	r := handlers.NewRouter(handlers.RouterConfig{
		Store:    st,
		Auth:     authService,
		Agents:   agentService,
		Wallets:  walletService,
		Settings: settingsService,
		Chain:    provider.NewMockChainData(),
		Archive:  archive,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
