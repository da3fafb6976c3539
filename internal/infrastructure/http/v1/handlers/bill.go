package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/documents/bill"
	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/http/v1/dto"
	"billbook/internal/infrastructure/pdf"
)

const dateQueryLayout = "2006-01-02"

// BillHandler provides HTTP handlers for the bill lifecycle, including
// the invoice PDF that commits the bill's stock on first render.
type BillHandler struct {
	*BaseHandler
	service   *bill.Service
	customers *customer.Service
	settings  *settings.Service
	renderer  *pdf.Renderer
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(
	base *BaseHandler,
	service *bill.Service,
	customers *customer.Service,
	settingsSvc *settings.Service,
	renderer *pdf.Renderer,
) *BillHandler {
	return &BillHandler{
		BaseHandler: base,
		service:     service,
		customers:   customers,
		settings:    settingsSvc,
		renderer:    renderer,
	}
}

// Create handles POST /bills.
func (h *BillHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := bill.New()
	doc.PaymentMode = req.PaymentMode

	switch {
	case req.CustomerID != nil && *req.CustomerID != "":
		customerID, err := id.Parse(*req.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id format"))
			return
		}
		doc.CustomerID = &customerID

	case req.CustomerName != "":
		// Walk-in sale keyed in by name: the customer record is
		// created on the fly so the bill still links to the catalog.
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
		if err := h.service.ResolveLine(ctx, doc, itemID, lineReq.Quantity); err != nil {
			h.Error(c, err)
			return
		}
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBill(doc))
}

// Get handles GET /bills/:id - bill with lines.
func (h *BillHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromBill(doc))
}

// List handles GET /bills with filtering and pagination.
func (h *BillHandler) List(c *gin.Context) {
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
		items[i] = dto.FromBill(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Delete handles DELETE /bills/:id. Committed bills are refused.
func (h *BillHandler) Delete(c *gin.Context) {
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

// Invoice handles GET /bills/:id/invoice - render the invoice PDF.
// The first render commits the bill's stock; later renders only
// reproduce the document.
func (h *BillHandler) Invoice(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.CommitStock(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	profile, err := h.settings.Get(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := h.renderer.RenderBill(doc, profile)
	if err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("render invoice: %w", err)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+doc.Number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *BillHandler) parseListFilter(c *gin.Context) (bill.ListFilter, bool) {
	filter := bill.ListFilter{
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

	if state := c.Query("stockState"); state != "" {
		s := bill.StockState(state)
		if s != bill.StockPending && s != bill.StockCommitted {
			h.Error(c, apperror.NewValidation("invalid stock state").WithDetail("value", state))
			return filter, false
		}
		filter.StockState = &s
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
