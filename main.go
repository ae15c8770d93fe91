package main

import (
	"log"
	"os"

	"agentstudio-backend/handlers"
	"agentstudio-backend/provider"
	"agentstudio-backend/service"
	"agentstudio-backend/store"
)

// Dev variant: in-memory store, auto-register login, simulated providers.
// State is lost on restart. The production variant lives in cmd/server.
func main() {
	st := store.NewMemoryStore()

	authService := service.NewAuthService(
		service.WithAuthStore(st),
		service.WithAutoRegister(true),
	)
	agentService := service.NewAgentService(service.WithAgentStore(st))
	walletService := service.NewWalletService(service.WithWalletStore(st))
	settingsService := service.NewSettingsService(
		service.WithSettingsStore(st),
		service.WithAIProvider(provider.NewMockAIProvider()),
	)

	r := handlers.NewRouter(handlers.RouterConfig{
		Store:    st,
		Auth:     authService,
		Agents:   agentService,
		Wallets:  walletService,
		Settings: settingsService,
		Chain:    provider.NewMockChainData(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("BCH Agent Studio API running on http://localhost:%s", port)
	log.Printf("Health check: http://localhost:%s/health", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
