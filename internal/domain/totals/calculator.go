// Package totals computes monetary totals for billing documents.
//
// All arithmetic is done in decimal to avoid binary float drift; tax is
// rounded to 2 decimal places per line, then summed.
package totals

import (
	"github.com/shopspring/decimal"

	"billbook/internal/core/types"
)

// Line is the pricing view of a document line.
type Line struct {
	Quantity  int
	UnitPrice types.Money
	// TaxRate is a percentage, e.g. 18 for 18% GST.
	TaxRate types.Money
}

// Summary holds the calculated document totals.
type Summary struct {
	Subtotal   types.Money
	TaxTotal   types.Money
	GrandTotal types.Money
}

// LineAmounts returns (base, tax, total) for a single line.
func LineAmounts(l Line) (types.Money, types.Money, types.Money) {
	base := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
	tax := base.Mul(types.Percent(l.TaxRate)).Round(2)
	return base, tax, base.Add(tax)
}

// Calculate sums line amounts into a document summary.
func Calculate(lines []Line) Summary {
	s := Summary{
		Subtotal:   types.Zero(),
		TaxTotal:   types.Zero(),
		GrandTotal: types.Zero(),
	}

	for _, l := range lines {
		base, tax, total := LineAmounts(l)
		s.Subtotal = s.Subtotal.Add(base)
		s.TaxTotal = s.TaxTotal.Add(tax)
		s.GrandTotal = s.GrandTotal.Add(total)
	}

	return s
}
