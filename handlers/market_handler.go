package handlers

import (
	"net/http"

	"agentstudio-backend/provider"
	"agentstudio-backend/service"

	"github.com/gin-gonic/gin"
)

// MarketHandler handles HTTP requests for the simulated market
type MarketHandler struct {
	agents *service.AgentService
	chain  provider.ChainData
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(agents *service.AgentService, chain provider.ChainData) *MarketHandler {
	return &MarketHandler{agents: agents, chain: chain}
}

// InteractRequest represents the request body for a market interaction
type InteractRequest struct {
	AgentID string  `json:"agentId"`
	Action  string  `json:"action"`
	Amount  float64 `json:"amount"`
}

// Interact handles POST /market/interact
func (h *MarketHandler) Interact(c *gin.Context) {
	var req InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agentId, action and amount required"})
		return
	}

	user := currentUser(c)
	agent, err := h.agents.MarketInteract(c.Request.Context(), user, req.AgentID, req.Action, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "agent": agent})
}

// DexPairs handles GET /market/dex
func (h *MarketHandler) DexPairs(c *gin.Context) {
	pairs, err := h.chain.DexPairs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pairs)
}
