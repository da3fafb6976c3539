package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/infrastructure/export"
)

// ExportHandler provides HTTP handlers for CSV/XLSX data exports.
type ExportHandler struct {
	*BaseHandler
	service *export.Service
}

// NewExportHandler creates a new export handler.
func NewExportHandler(base *BaseHandler, service *export.Service) *ExportHandler {
	return &ExportHandler{BaseHandler: base, service: service}
}

// Bills handles GET /export/bills?format=csv|xlsx.
func (h *ExportHandler) Bills(c *gin.Context) {
	h.serve(c, h.service.Bills)
}

// Customers handles GET /export/customers?format=csv|xlsx.
func (h *ExportHandler) Customers(c *gin.Context) {
	h.serve(c, h.service.Customers)
}

// Inventory handles GET /export/inventory?format=csv|xlsx.
func (h *ExportHandler) Inventory(c *gin.Context) {
	h.serve(c, h.service.Inventory)
}

func (h *ExportHandler) serve(c *gin.Context, build func(ctx context.Context) (export.Dataset, error)) {
	ctx := c.Request.Context()

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.Error(c, err)
		return
	}

	ds, err := build(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := ds.Encode(format)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ds.Filename(format)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
