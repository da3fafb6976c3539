package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain/catalogs/item"
	"billbook/internal/infrastructure/http/v1/dto"
)

type itemCatalogHandler = CatalogHandler[
	*item.Item,
	dto.CreateItemRequest,
	dto.UpdateItemRequest,
]

// ItemHandler extends the generic catalog handler with item-specific
// operations. Update and Delete shadow the generic versions: item edits
// record inventory history and deletes are guarded by reference counts,
// both of which live on item.Service rather than the embedded CRUD service.
type ItemHandler struct {
	*itemCatalogHandler
	service *item.Service
}

// NewItemHandler creates the item catalog handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	config := CatalogHandlerConfig[
		*item.Item,
		dto.CreateItemRequest,
		dto.UpdateItemRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "item",

		MapCreateDTO: func(req dto.CreateItemRequest) *item.Item {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateItemRequest, existing *item.Item) *item.Item {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(it *item.Item) any {
			return dto.FromItem(it)
		},
	}

	return &ItemHandler{
		itemCatalogHandler: NewCatalogHandler(base, config),
		service:            service,
	}
}

// Update handles PUT /items/:id through the history-recording path.
func (h *ItemHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItem(existing))
}

// Delete handles DELETE /items/:id. Fails with 409 while bills,
// quotations or history still reference the item.
func (h *ItemHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForceDelete handles DELETE /items/:id/force: detaches dependent
// rows (keeping their snapshots) and removes the item.
func (h *ItemHandler) ForceDelete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.ForceDelete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Lookup handles GET /items/lookup?name= - exact-name lookup.
func (h *ItemHandler) Lookup(c *gin.Context) {
	ctx := c.Request.Context()

	name := c.Query("name")
	if name == "" {
		h.Error(c, apperror.NewValidation("name query parameter is required"))
		return
	}

	it, err := h.service.FindByName(ctx, name)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItem(it))
}
