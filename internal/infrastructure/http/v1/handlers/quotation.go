package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/documents/quotation"
	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/http/v1/dto"
	"billbook/internal/infrastructure/pdf"
)

// QuotationHandler provides HTTP handlers for quotations. Quotations
// never touch item stock, so the PDF render has no side effects.
type QuotationHandler struct {
	*BaseHandler
	service   *quotation.Service
	customers *customer.Service
	settings  *settings.Service
	renderer  *pdf.Renderer
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(
	base *BaseHandler,
	service *quotation.Service,
	customers *customer.Service,
	settingsSvc *settings.Service,
	renderer *pdf.Renderer,
) *QuotationHandler {
	return &QuotationHandler{
		BaseHandler: base,
		service:     service,
		customers:   customers,
		settings:    settingsSvc,
		renderer:    renderer,
	}
}

// Create handles POST /quotations.
func (h *QuotationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	validUntil, err := quotation.ParseValidUntil(req.ValidUntil)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := quotation.New()
	doc.ValidUntil = validUntil

	switch {
	case req.CustomerID != nil && *req.CustomerID != "":
		customerID, err := id.Parse(*req.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id format"))
			return
		}
		doc.CustomerID = &customerID

	case req.CustomerName != "":
		cust, err := h.customers.ResolveOrCreate(ctx, req.CustomerName)
		if err != nil {
			h.Error(c, err)
			return
		}
		doc.CustomerID = &cust.ID

	default:
		h.Error(c, apperror.NewValidation("customerId or customerName is required"))
		return
	}

	for _, lineReq := range req.Lines {
		itemID, err := id.Parse(lineReq.ItemID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid item id format").WithDetail("itemId", lineReq.ItemID))
			return
		}
		if err := h.service.ResolveLine(ctx, doc, itemID, lineReq.Quantity, lineReq.Price); err != nil {
			h.Error(c, err)
			return
		}
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	// Clients that ask for a PDF get the rendered quotation straight
	// from the create call, the way the desk workflow uses it.
	if strings.Contains(c.GetHeader("Accept"), "application/pdf") {
		h.renderPDF(c, doc, http.StatusCreated)
		return
	}

	c.JSON(http.StatusCreated, dto.FromQuotation(doc))
}

// Get handles GET /quotations/:id - quotation with lines.
func (h *QuotationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}

// List handles GET /quotations with filtering and pagination.
func (h *QuotationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromQuotation(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Delete handles DELETE /quotations/:id.
func (h *QuotationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Document handles GET /quotations/:id/document - render the quotation PDF.
func (h *QuotationHandler) Document(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.renderPDF(c, doc, http.StatusOK)
}

func (h *QuotationHandler) renderPDF(c *gin.Context, doc *quotation.Quotation, status int) {
	ctx := c.Request.Context()

	profile, err := h.settings.Get(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := h.renderer.RenderQuotation(doc, profile)
	if err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("render quotation: %w", err)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quotation-"+doc.Number+".pdf"))
	c.Data(status, "application/pdf", data)
}

func (h *QuotationHandler) parseListFilter(c *gin.Context) (quotation.ListFilter, bool) {
	filter := quotation.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			OrderBy: c.DefaultQuery("orderBy", "-created_at"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
		},
	}

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id format"))
			return filter, false
		}
		filter.CustomerID = &parsed
	}

	if from := c.Query("dateFrom"); from != "" {
		t, err := time.Parse(dateQueryLayout, from)
		if err != nil {
			h.Error(c, apperror.NewDateParse(from))
			return filter, false
		}
		filter.DateFrom = &t
	}

	if to := c.Query("dateTo"); to != "" {
		t, err := time.Parse(dateQueryLayout, to)
		if err != nil {
			h.Error(c, apperror.NewDateParse(to))
			return filter, false
		}
		filter.DateTo = &t
	}

	return filter, true
}
