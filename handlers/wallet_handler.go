package handlers

import (
	"net/http"

	"agentstudio-backend/service"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles HTTP requests for wallets
type WalletHandler struct {
	wallets *service.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// List handles GET /wallets
func (h *WalletHandler) List(c *gin.Context) {
	user := currentUser(c)
	wallets, err := h.wallets.ListWallets(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// Upsert handles POST /wallets
func (h *WalletHandler) Upsert(c *gin.Context) {
	var req service.WalletInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet payload"})
		return
	}

	user := currentUser(c)
	wallet, err := h.wallets.UpsertWallet(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}
