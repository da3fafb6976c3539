package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/http/v1/dto"
)

// SettingsHandler provides HTTP handlers for the company profile.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// Get handles GET /settings - returns an empty profile until first saved.
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.service.Get(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(profile))
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile := req.ToEntity()
	if err := h.service.Update(ctx, profile); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(profile))
}
