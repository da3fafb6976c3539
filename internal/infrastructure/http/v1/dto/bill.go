package dto

import (
	"time"

	"billbook/internal/core/types"
	"billbook/internal/domain/documents/bill"
)

// --- Request DTOs ---

// BillLineRequest is one requested invoice position. Pricing is never
// accepted from the client: it is snapshotted from the item catalog.
type BillLineRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CreateBillRequest is the request body for creating a bill.
// Either customerId (snapshot taken from the catalog) or a free-form
// customerName for walk-in sales must be provided.
type CreateBillRequest struct {
	CustomerID   *string           `json:"customerId"`
	CustomerName string            `json:"customerName"`
	PaymentMode  *string           `json:"paymentMode"`
	Lines        []BillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// --- Response DTOs ---

// BillLineResponse is one invoice position.
type BillLineResponse struct {
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

// BillResponse is the response body for a bill.
type BillResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Date         time.Time          `json:"date"`
	CustomerID   *string            `json:"customerId,omitempty"`
	CustomerName string             `json:"customerName"`
	MobileNumber *string            `json:"mobileNumber,omitempty"`
	Email        *string            `json:"email,omitempty"`
	Address      *string            `json:"address,omitempty"`
	GSTIN        *string            `json:"gstin,omitempty"`
	PaymentMode  *string            `json:"paymentMode,omitempty"`
	StockState   bill.StockState    `json:"stockState"`
	Subtotal     types.Money        `json:"subtotal"`
	TaxTotal     types.Money        `json:"taxTotal"`
	TotalAmount  types.Money        `json:"totalAmount"`
	Version      int                `json:"version"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Lines        []BillLineResponse `json:"lines,omitempty"`
}

// FromBill creates response DTO from domain entity.
func FromBill(b *bill.Bill) *BillResponse {
	resp := &BillResponse{
		ID:           b.ID.String(),
		Number:       b.Number,
		Date:         b.Date,
		CustomerName: b.CustomerName,
		MobileNumber: b.MobileNumber,
		Email:        b.Email,
		Address:      b.Address,
		GSTIN:        b.GSTIN,
		PaymentMode:  b.PaymentMode,
		StockState:   b.StockState,
		Subtotal:     b.Subtotal,
		TaxTotal:     b.TaxTotal,
		TotalAmount:  b.TotalAmount,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.CustomerID != nil {
		s := b.CustomerID.String()
		resp.CustomerID = &s
	}

	for _, l := range b.Lines {
		line := BillLineResponse{
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
