package dto

import (
	"time"

	"billbook/internal/core/types"
	"billbook/internal/domain/documents/quotation"
)

// --- Request DTOs ---

// QuotationLineRequest is one requested quotation position. A price
// override replaces the catalog price for this quotation only.
type QuotationLineRequest struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    *string `json:"price"`
}

// CreateQuotationRequest is the request body for creating a quotation.
// ValidUntil accepts DD/MM/YYYY or YYYY-MM-DD.
type CreateQuotationRequest struct {
	CustomerID   *string                `json:"customerId"`
	CustomerName string                 `json:"customerName"`
	ValidUntil   string                 `json:"validUntil" binding:"required"`
	Lines        []QuotationLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// --- Response DTOs ---

// QuotationLineResponse is one quoted position.
type QuotationLineResponse struct {
	LineNo       int         `json:"lineNo"`
	ItemID       *string     `json:"itemId,omitempty"`
	ItemName     *string     `json:"itemName,omitempty"`
	HSNSACNumber *string     `json:"hsnSacNumber,omitempty"`
	Quantity     int         `json:"quantity"`
	Price        types.Money `json:"price"`
	TaxRate      types.Money `json:"taxRate"`
	TaxAmount    types.Money `json:"taxAmount"`
	Amount       types.Money `json:"amount"`
}

// QuotationResponse is the response body for a quotation.
type QuotationResponse struct {
	ID           string                  `json:"id"`
	Number       string                  `json:"number"`
	Date         time.Time               `json:"date"`
	CustomerID   *string                 `json:"customerId,omitempty"`
	CustomerName string                  `json:"customerName"`
	MobileNumber *string                 `json:"mobileNumber,omitempty"`
	Email        *string                 `json:"email,omitempty"`
	Address      *string                 `json:"address,omitempty"`
	GSTIN        *string                 `json:"gstin,omitempty"`
	ValidUntil   time.Time               `json:"validUntil"`
	Subtotal     types.Money             `json:"subtotal"`
	TaxTotal     types.Money             `json:"taxTotal"`
	TotalAmount  types.Money             `json:"totalAmount"`
	Version      int                     `json:"version"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	Lines        []QuotationLineResponse `json:"lines,omitempty"`
}

// FromQuotation creates response DTO from domain entity.
func FromQuotation(q *quotation.Quotation) *QuotationResponse {
	resp := &QuotationResponse{
		ID:           q.ID.String(),
		Number:       q.Number,
		Date:         q.Date,
		CustomerName: q.CustomerName,
		MobileNumber: q.MobileNumber,
		Email:        q.Email,
		Address:      q.Address,
		GSTIN:        q.GSTIN,
		ValidUntil:   q.ValidUntil,
		Subtotal:     q.Subtotal,
		TaxTotal:     q.TaxTotal,
		TotalAmount:  q.TotalAmount,
		Version:      q.Version,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}

	if q.CustomerID != nil {
		s := q.CustomerID.String()
		resp.CustomerID = &s
	}

	for _, l := range q.Lines {
		line := QuotationLineResponse{
			LineNo:       l.LineNo,
			ItemName:     l.ItemName,
			HSNSACNumber: l.HSNSACNumber,
			Quantity:     l.Quantity,
			Price:        l.Price,
			TaxRate:      l.TaxRate,
			TaxAmount:    l.TaxAmount,
			Amount:       l.Amount,
		}
		if l.ItemID != nil {
			s := l.ItemID.String()
			line.ItemID = &s
		}
		resp.Lines = append(resp.Lines, line)
	}

	return resp
}
