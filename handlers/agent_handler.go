package handlers

import (
	"encoding/json"
	"net/http"

	"agentstudio-backend/service"

	"github.com/gin-gonic/gin"
)

// AgentHandler handles HTTP requests for agents, commands and actions
type AgentHandler struct {
	agents *service.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agents *service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

// List handles GET /agents
func (h *AgentHandler) List(c *gin.Context) {
	user := currentUser(c)
	agents, err := h.agents.ListAgents(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// Upsert handles POST /agents
func (h *AgentHandler) Upsert(c *gin.Context) {
	var req service.AgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent payload"})
		return
	}

	user := currentUser(c)
	agent, err := h.agents.UpsertAgent(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// Config handles GET /agents/:agentId/config
func (h *AgentHandler) Config(c *gin.Context) {
	user := currentUser(c)
	settings, err := h.agents.AgentConfig(c.Request.Context(), user, c.Param("agentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ai": settings.AI, "connectors": settings.Connectors})
}

// CommandRequest represents the request body for issuing a remote command
type CommandRequest struct {
	AgentID string `json:"agentId"`
	Command string `json:"command"`
}

// IssueCommand handles POST /agents/command
func (h *AgentHandler) IssueCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agentId and command required"})
		return
	}

	user := currentUser(c)
	entry, _, err := h.agents.IssueCommand(c.Request.Context(), user, req.AgentID, req.Command)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": entry})
}

// ListCommands handles GET /commands/:id where id is the agent identifier
func (h *AgentHandler) ListCommands(c *gin.Context) {
	commands, err := h.agents.ListCommands(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commands)
}

// ResolveCommandRequest represents the request body for resolving a command
type ResolveCommandRequest struct {
	Status string `json:"status"`
}

// ResolveCommand handles POST /commands/:id/resolve
func (h *AgentHandler) ResolveCommand(c *gin.Context) {
	var req ResolveCommandRequest
	// body is optional; an absent status resolves to "executed"
	_ = c.ShouldBindJSON(&req)

	if err := h.agents.ResolveCommand(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LiquidityRequest represents the request body for a liquidity adjustment
type LiquidityRequest struct {
	Amount float64 `json:"amount"`
	Action string  `json:"action"`
}

// AdjustLiquidity handles POST /agents/:agentId/liquidity
func (h *AgentHandler) AdjustLiquidity(c *gin.Context) {
	var req LiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and action required"})
		return
	}

	user := currentUser(c)
	current, err := h.agents.AdjustLiquidity(c.Request.Context(), user, c.Param("agentId"), req.Amount, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "currentLiquidity": current})
}

// ExecuteActionRequest represents the request body for a simulated execution
type ExecuteActionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ExecuteAction handles POST /agents/:agentId/actions/execute
func (h *AgentHandler) ExecuteAction(c *gin.Context) {
	var req ExecuteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type required"})
		return
	}

	user := currentUser(c)
	action, err := h.agents.ExecuteAction(c.Request.Context(), user, c.Param("agentId"), req.Type, req.Payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}
