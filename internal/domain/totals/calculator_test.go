package totals

import (
	"testing"

	"billbook/internal/core/types"
)

func TestCalculate_SingleLine(t *testing.T) {
	// 2 units at 100.00 with 18% GST
	s := Calculate([]Line{
		{Quantity: 2, UnitPrice: types.MustMoney("100"), TaxRate: types.MustMoney("18")},
	})

	if !s.Subtotal.Equal(types.MustMoney("200")) {
		t.Errorf("subtotal = %s, want 200", s.Subtotal)
	}
	if !s.TaxTotal.Equal(types.MustMoney("36")) {
		t.Errorf("tax = %s, want 36", s.TaxTotal)
	}
	if !s.GrandTotal.Equal(types.MustMoney("236")) {
		t.Errorf("grand total = %s, want 236", s.GrandTotal)
	}
}

func TestCalculate_MixedRates(t *testing.T) {
	s := Calculate([]Line{
		{Quantity: 1, UnitPrice: types.MustMoney("499.50"), TaxRate: types.MustMoney("12")},
		{Quantity: 3, UnitPrice: types.MustMoney("40"), TaxRate: types.MustMoney("5")},
		{Quantity: 2, UnitPrice: types.MustMoney("10"), TaxRate: types.Zero()},
	})

	// 499.50 + 120 + 20
	if !s.Subtotal.Equal(types.MustMoney("639.50")) {
		t.Errorf("subtotal = %s, want 639.50", s.Subtotal)
	}
	// 59.94 + 6 + 0
	if !s.TaxTotal.Equal(types.MustMoney("65.94")) {
		t.Errorf("tax = %s, want 65.94", s.TaxTotal)
	}
	if !s.GrandTotal.Equal(types.MustMoney("705.44")) {
		t.Errorf("grand total = %s, want 705.44", s.GrandTotal)
	}
}

func TestCalculate_TaxRoundedPerLine(t *testing.T) {
	// 33.33 * 18% = 5.9994, rounds to 6.00 at the line level.
	base, tax, total := LineAmounts(Line{
		Quantity:  1,
		UnitPrice: types.MustMoney("33.33"),
		TaxRate:   types.MustMoney("18"),
	})

	if !base.Equal(types.MustMoney("33.33")) {
		t.Errorf("base = %s, want 33.33", base)
	}
	if !tax.Equal(types.MustMoney("6.00")) {
		t.Errorf("tax = %s, want 6.00", tax)
	}
	if !total.Equal(types.MustMoney("39.33")) {
		t.Errorf("total = %s, want 39.33", total)
	}
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	if !s.GrandTotal.IsZero() {
		t.Errorf("grand total = %s, want 0", s.GrandTotal)
	}
}
