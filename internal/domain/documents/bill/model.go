// Package bill provides the Bill document: a GST invoice with a
// customer snapshot, snapshot line pricing and a stock commitment
// lifecycle.
package bill

import (
	"context"

	"billbook/internal/core/apperror"
	"billbook/internal/core/entity"
	"billbook/internal/core/id"
	"billbook/internal/core/types"
	"billbook/internal/domain/totals"
)

// StockState tracks whether the bill's quantities have been taken
// out of item stock yet.
type StockState string

const (
	// StockPending: bill exists, stock not yet decremented.
	StockPending StockState = "pending"

	// StockCommitted: stock was decremented on first invoice render.
	// The bill is immutable from this point on.
	StockCommitted StockState = "committed"
)

// Bill represents a sales invoice.
//
// Customer contact fields are a point-in-time snapshot: editing or even
// deleting the customer later must not change an issued invoice.
type Bill struct {
	entity.Document

	// CustomerID links to the customer catalog; nil for walk-in sales
	// and after the customer record is removed.
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// Customer snapshot
	CustomerName string  `db:"customer_name" json:"customerName"`
	MobileNumber *string `db:"mobile_number" json:"mobileNumber,omitempty"`
	Email        *string `db:"email" json:"email,omitempty"`
	Address      *string `db:"address" json:"address,omitempty"`
	GSTIN        *string `db:"gstin" json:"gstin,omitempty"`

	// PaymentMode, e.g. "Cash", "Card", "UPI"
	PaymentMode *string `db:"payment_mode" json:"paymentMode,omitempty"`

	// StockState tracks stock reconciliation
	StockState StockState `db:"stock_state" json:"stockState"`

	// Totals (calculated from lines, immutable once persisted)
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	TaxTotal    types.Money `db:"tax_total" json:"taxTotal"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one bill position. Price and tax rate are copied from
// the item at creation time, so later catalog edits leave the bill intact.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// ItemID is nullable: force-deleting an item detaches its lines.
	ItemID *id.ID `db:"item_id" json:"itemId,omitempty"`

	// ItemName is resolved by join when loading; nil when the item
	// reference dangles (rendered as "Not Available").
	ItemName *string `db:"item_name" json:"itemName,omitempty"`

	// HSNSACNumber resolved by join for printing.
	HSNSACNumber *string `db:"hsn_sac_number" json:"hsnSacNumber,omitempty"`

	Quantity int `db:"quantity" json:"quantity"`

	// Snapshot pricing
	Price   types.Money `db:"price" json:"price"`
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// Derived amounts
	TaxAmount types.Money `db:"tax_amount" json:"taxAmount"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// New creates an empty pending bill.
func New() *Bill {
	return &Bill{
		Document:    entity.NewDocument(),
		StockState:  StockPending,
		Subtotal:    types.Zero(),
		TaxTotal:    types.Zero(),
		TotalAmount: types.Zero(),
		Lines:       make([]Line, 0),
	}
}

// AddLine appends a position with snapshot pricing and recalculates totals.
func (b *Bill) AddLine(itemID *id.ID, quantity int, price, taxRate types.Money) {
	_, tax, total := totals.LineAmounts(totals.Line{
		Quantity:  quantity,
		UnitPrice: price,
		TaxRate:   taxRate,
	})

	b.Lines = append(b.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(b.Lines) + 1,
		ItemID:    itemID,
		Quantity:  quantity,
		Price:     price,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Amount:    total,
	})
	b.RecalculateTotals()
}

// RecalculateTotals recomputes document totals from lines.
func (b *Bill) RecalculateTotals() {
	lines := make([]totals.Line, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = totals.Line{Quantity: l.Quantity, UnitPrice: l.Price, TaxRate: l.TaxRate}
	}

	s := totals.Calculate(lines)
	b.Subtotal = s.Subtotal
	b.TaxTotal = s.TaxTotal
	b.TotalAmount = s.GrandTotal
}

// IsProcessed reports whether stock has been committed.
func (b *Bill) IsProcessed() bool {
	return b.StockState == StockCommitted
}

// CanDelete returns an error when the bill may no longer be removed.
func (b *Bill) CanDelete() error {
	if b.IsProcessed() {
		return apperror.NewBillProcessed(b.ID.String())
	}
	return nil
}

// MarkCommitted flips the stock state after stock reconciliation.
func (b *Bill) MarkCommitted() {
	b.StockState = StockCommitted
}

// Validate implements entity.Validatable.
func (b *Bill) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}

	if b.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	if len(b.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range b.Lines {
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
