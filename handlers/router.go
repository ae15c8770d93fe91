package handlers

import (
	"agentstudio-backend/provider"
	"agentstudio-backend/service"
	"agentstudio-backend/storage"
	"agentstudio-backend/store"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the wired dependencies of the HTTP surface.
type RouterConfig struct {
	Store    store.Store
	Auth     *service.AuthService
	Agents   *service.AgentService
	Wallets  *service.WalletService
	Settings *service.SettingsService
	Chain    provider.ChainData
	Archive  storage.Archive
}

// NewRouter builds the gin engine with every route of the API surface.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(CORS())

	authHandler := NewAuthHandler(cfg.Auth)
	agentHandler := NewAgentHandler(cfg.Agents)
	walletHandler := NewWalletHandler(cfg.Wallets)
	marketHandler := NewMarketHandler(cfg.Agents, cfg.Chain)
	settingsHandler := NewSettingsHandler(cfg.Settings)
	publicHandler := NewPublicHandler(cfg.Agents, cfg.Store)

	requireAuth := RequireAuth(cfg.Auth)

	// Health check endpoint
	r.GET("/health", publicHandler.Health)

	// Auth endpoints
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/auth/profile", requireAuth, authHandler.Profile)
	r.GET("/auth/check-user/:email", authHandler.CheckUser)

	// Agent endpoints
	r.GET("/agents", requireAuth, agentHandler.List)
	r.POST("/agents", requireAuth, agentHandler.Upsert)
	r.GET("/agents/:agentId/config", requireAuth, agentHandler.Config)
	r.POST("/agents/command", requireAuth, agentHandler.IssueCommand)
	r.POST("/agents/:agentId/liquidity", requireAuth, agentHandler.AdjustLiquidity)
	r.POST("/agents/:agentId/actions/execute", requireAuth, agentHandler.ExecuteAction)

	// Command endpoints (kept unauthenticated for the device poll flow)
	r.GET("/commands/:id", agentHandler.ListCommands)
	r.POST("/commands/:id/resolve", agentHandler.ResolveCommand)

	// Market endpoints
	r.POST("/market/interact", requireAuth, marketHandler.Interact)
	r.GET("/market/dex", marketHandler.DexPairs)

	// Public aggregate views
	r.GET("/public/agents", publicHandler.Agents)
	r.GET("/public/logs", publicHandler.Logs)

	// Wallet endpoints
	r.GET("/wallets", requireAuth, walletHandler.List)
	r.POST("/wallets", requireAuth, walletHandler.Upsert)

	// Settings endpoints
	r.GET("/settings", requireAuth, settingsHandler.Get)
	r.PUT("/settings", requireAuth, settingsHandler.Update)
	r.POST("/settings/test-connector", requireAuth, settingsHandler.TestConnector)

	// Operational endpoints
	if cfg.Archive != nil {
		adminHandler := NewAdminHandler(cfg.Store, cfg.Archive)
		r.POST("/admin/snapshot", requireAuth, adminHandler.Snapshot)
	}

	return r
}
