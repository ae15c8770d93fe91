package handlers

import (
	"net/http"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/service"
	"agentstudio-backend/store"

	"github.com/gin-gonic/gin"
)

// PublicHandler handles the unauthenticated aggregate endpoints
type PublicHandler struct {
	agents *service.AgentService
	store  store.Store
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(agents *service.AgentService, st store.Store) *PublicHandler {
	return &PublicHandler{agents: agents, store: st}
}

// Agents handles GET /public/agents
func (h *PublicHandler) Agents(c *gin.Context) {
	agents, err := h.agents.PublicAgents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// Logs handles GET /public/logs
func (h *PublicHandler) Logs(c *gin.Context) {
	logs, err := h.agents.RecentLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Health handles GET /health
func (h *PublicHandler) Health(c *gin.Context) {
	users := 0
	if err := h.store.View(c.Request.Context(), func(doc *models.Document) error {
		users = len(doc.Users)
		return nil
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"users":     users,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
