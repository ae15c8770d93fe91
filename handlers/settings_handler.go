package handlers

import (
	"net/http"

	"agentstudio-backend/models"
	"agentstudio-backend/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles HTTP requests for user configuration
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	user := currentUser(c)
	settings, err := h.settings.GetSettings(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	user := currentUser(c)
	settings, err := h.settings.UpdateSettings(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// TestConnectorRequest represents the request body for a connector probe
type TestConnectorRequest struct {
	Target string `json:"target"`
}

// TestConnector handles POST /settings/test-connector
func (h *SettingsHandler) TestConnector(c *gin.Context) {
	var req TestConnectorRequest
	// body is optional; the default target is the AI provider
	_ = c.ShouldBindJSON(&req)

	user := currentUser(c)
	result, err := h.settings.TestConnector(c.Request.Context(), user, req.Target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
