package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain"
	"billbook/internal/domain/history"
	"billbook/internal/infrastructure/http/v1/dto"
)

// HistoryHandler provides HTTP handlers for the inventory audit ledger.
type HistoryHandler struct {
	*BaseHandler
	service *history.Service
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(base *BaseHandler, service *history.Service) *HistoryHandler {
	return &HistoryHandler{BaseHandler: base, service: service}
}

// List handles GET /inventory/history with filtering and pagination.
func (h *HistoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := history.ListFilter{
		ListFilter: domain.ListFilter{
			Limit:  h.ParseIntQuery(c, "limit", 50),
			Offset: h.ParseIntQuery(c, "offset", 0),
		},
	}

	if itemID := c.Query("itemId"); itemID != "" {
		parsed, err := id.Parse(itemID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid item id format"))
			return
		}
		filter.ItemID = &parsed
	}

	if action := c.Query("action"); action != "" {
		filter.Action = &action
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, entry := range result.Items {
		items[i] = dto.FromHistoryEntry(entry)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Reset handles DELETE /inventory/history - administrative wipe.
func (h *HistoryHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.service.Reset(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResetHistoryResponse{Deleted: deleted})
}
