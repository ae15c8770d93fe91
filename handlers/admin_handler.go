package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/storage"
	"agentstudio-backend/store"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles operational endpoints
type AdminHandler struct {
	store   store.Store
	archive storage.Archive
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(st store.Store, archive storage.Archive) *AdminHandler {
	return &AdminHandler{store: st, archive: archive}
}

// Snapshot handles POST /admin/snapshot: it serializes the current state
// document and writes it to the configured archive.
func (h *AdminHandler) Snapshot(c *gin.Context) {
	var raw []byte
	err := h.store.View(c.Request.Context(), func(doc *models.Document) error {
		var marshalErr error
		raw, marshalErr = json.MarshalIndent(doc, "", "  ")
		return marshalErr
	})
	if err != nil {
		respondError(c, err)
		return
	}

	name := fmt.Sprintf("studio-%s.json", time.Now().UTC().Format("20060102-150405"))
	location, err := h.archive.Put(c.Request.Context(), name, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "location": location})
}
