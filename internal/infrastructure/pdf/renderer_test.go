package pdf

import (
	"bytes"
	"testing"
	"time"

	"billbook/internal/core/types"
	"billbook/internal/domain/documents/bill"
	"billbook/internal/domain/documents/quotation"
	"billbook/internal/domain/settings"
)

func testSettings() *settings.Settings {
	s := settings.Default()
	s.CompanyName = "Sharma Traders"
	s.Address = "14 MG Road, Pune"
	s.Phone = "+91 98765 43210"
	s.GSTIN = "27ABCDE1234F1Z5"
	s.BankName = "State Bank"
	s.BankAccountNumber = "1234567890"
	s.IFSCCode = "SBIN0001234"
	return s
}

func strPtr(s string) *string { return &s }

func TestRenderBill(t *testing.T) {
	b := bill.New()
	b.Number = "SQE-2026-08-00001"
	b.CustomerName = "Acme Traders"
	b.MobileNumber = strPtr("9876501234")
	b.PaymentMode = strPtr("UPI")
	b.AddLine(nil, 2, types.NewMoney(100), types.NewMoney(18))
	b.Lines[0].ItemName = strPtr("Steel Pipe")
	b.Lines[0].HSNSACNumber = strPtr("7306")

	out, err := NewRenderer().RenderBill(b, testSettings())
	if err != nil {
		t.Fatalf("RenderBill failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output is not a PDF, starts with %q", out[:min(8, len(out))])
	}
}

func TestRenderBill_MissingItem(t *testing.T) {
	b := bill.New()
	b.Number = "SQE-2026-08-00002"
	b.CustomerName = "Walk-in"
	b.AddLine(nil, 1, types.NewMoney(50), types.Zero())
	// ItemName stays nil: the line's item was force-deleted.

	out, err := NewRenderer().RenderBill(b, nil)
	if err != nil {
		t.Fatalf("RenderBill failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
}

func TestRenderQuotation(t *testing.T) {
	q := quotation.New()
	q.Number = "QTE-2026-08-00001"
	q.CustomerName = "Acme Traders"
	q.ValidUntil = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	q.AddLine(nil, 3, types.NewMoney(80), types.NewMoney(18))
	q.Lines[0].ItemName = strPtr("Copper Wire")

	out, err := NewRenderer().RenderQuotation(q, testSettings())
	if err != nil {
		t.Fatalf("RenderQuotation failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

// The Total column must print the line amount as computed by AddLine:
// it already includes tax, so adding tax on top again would disagree
// with the subtotal/tax/grand total rows below the table.
func TestBillLines_TotalMatchesLineAmount(t *testing.T) {
	b := bill.New()
	b.AddLine(nil, 2, types.NewMoney(100), types.NewMoney(18))

	rows := billLines(b)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].total.Equal(b.Lines[0].Amount) {
		t.Errorf("row total = %s, want line amount %s", rows[0].total, b.Lines[0].Amount)
	}
	if want := types.NewMoney(236); !rows[0].total.Equal(want) {
		t.Errorf("row total = %s, want %s (tax %s already included)",
			rows[0].total, want, b.Lines[0].TaxAmount)
	}
}

func TestQuotationLines_TotalMatchesLineAmount(t *testing.T) {
	q := quotation.New()
	q.AddLine(nil, 3, types.NewMoney(80), types.NewMoney(18))

	rows := quotationLines(q)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].total.Equal(q.Lines[0].Amount) {
		t.Errorf("row total = %s, want line amount %s", rows[0].total, q.Lines[0].Amount)
	}
	if want := types.MustMoney("283.20"); !rows[0].total.Equal(want) {
		t.Errorf("row total = %s, want %s", rows[0].total, want)
	}
}
