// Package quotation provides the Quotation document: a priced offer
// with a validity date. Quotations never touch item stock.
package quotation

import (
	"context"
	"time"

	"billbook/internal/core/apperror"
	"billbook/internal/core/entity"
	"billbook/internal/core/id"
	"billbook/internal/core/types"
	"billbook/internal/domain/totals"
)

// Quotation represents a sales quotation.
// Carries the same customer snapshot as Bill; line prices may be
// overridden per quotation instead of taken from the catalog.
type Quotation struct {
	entity.Document

	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// Customer snapshot
	CustomerName string  `db:"customer_name" json:"customerName"`
	MobileNumber *string `db:"mobile_number" json:"mobileNumber,omitempty"`
	Email        *string `db:"email" json:"email,omitempty"`
	Address      *string `db:"address" json:"address,omitempty"`
	GSTIN        *string `db:"gstin" json:"gstin,omitempty"`

	// ValidUntil is the offer expiry date
	ValidUntil time.Time `db:"valid_until" json:"validUntil"`

	// Totals (calculated from lines)
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	TaxTotal    types.Money `db:"tax_total" json:"taxTotal"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one quoted position with snapshot pricing.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// ItemID is nullable: force-deleting an item detaches its lines.
	ItemID *id.ID `db:"item_id" json:"itemId,omitempty"`

	// ItemName and HSNSACNumber resolved by join when loading.
	ItemName     *string `db:"item_name" json:"itemName,omitempty"`
	HSNSACNumber *string `db:"hsn_sac_number" json:"hsnSacNumber,omitempty"`

	Quantity int `db:"quantity" json:"quantity"`

	// Price is the quoted unit price, possibly overriding the catalog.
	Price   types.Money `db:"price" json:"price"`
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	TaxAmount types.Money `db:"tax_amount" json:"taxAmount"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// New creates an empty quotation.
func New() *Quotation {
	return &Quotation{
		Document:    entity.NewDocument(),
		Subtotal:    types.Zero(),
		TaxTotal:    types.Zero(),
		TotalAmount: types.Zero(),
		Lines:       make([]Line, 0),
	}
}

// AddLine appends a position and recalculates totals.
func (q *Quotation) AddLine(itemID *id.ID, quantity int, price, taxRate types.Money) {
	_, tax, total := totals.LineAmounts(totals.Line{
		Quantity:  quantity,
		UnitPrice: price,
		TaxRate:   taxRate,
	})

	q.Lines = append(q.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(q.Lines) + 1,
		ItemID:    itemID,
		Quantity:  quantity,
		Price:     price,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Amount:    total,
	})
	q.RecalculateTotals()
}

// RecalculateTotals recomputes document totals from lines.
func (q *Quotation) RecalculateTotals() {
	lines := make([]totals.Line, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = totals.Line{Quantity: l.Quantity, UnitPrice: l.Price, TaxRate: l.TaxRate}
	}

	s := totals.Calculate(lines)
	q.Subtotal = s.Subtotal
	q.TaxTotal = s.TaxTotal
	q.TotalAmount = s.GrandTotal
}

// Validate implements entity.Validatable.
func (q *Quotation) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if q.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	if q.ValidUntil.IsZero() {
		return apperror.NewValidation("validity date is required").
			WithDetail("field", "validUntil")
	}

	if len(q.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range q.Lines {
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Price.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
