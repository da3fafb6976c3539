// Package pdf renders printable invoices and quotations.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"billbook/internal/core/types"
	"billbook/internal/domain/documents/bill"
	"billbook/internal/domain/documents/quotation"
	"billbook/internal/domain/settings"
)

// missingItemName is printed when the line's item was force-deleted.
const missingItemName = "Not Available"

// Palette used across both document layouts.
var (
	primaryColor   = rgb{26, 140, 255}
	secondaryColor = rgb{66, 66, 66}
	accentColor    = rgb{255, 153, 0}
	lightBG        = rgb{245, 245, 245}
	textColor      = rgb{33, 33, 33}
	white          = rgb{255, 255, 255}
)

type rgb struct{ r, g, b int }

// Renderer produces PDF documents from domain entities.
type Renderer struct{}

// NewRenderer creates a new PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// line is a row of the document's item table, already formatted.
type line struct {
	name      string
	hsnSAC    string
	quantity  int
	price     types.Money
	taxRate   types.Money
	taxAmount types.Money
	total     types.Money
}

// header carries everything above the item table.
type header struct {
	banner     string // INVOICE / QUOTATION
	partyLabel string // BILLED TO / QUOTED TO
	number     string
	date       time.Time

	// extraLabel/extraValue fill the third row of the number box
	// (payment mode for bills, validity for quotations).
	extraLabel string
	extraValue string

	customerName string
	phone        *string
	email        *string
	address      *string
	gstin        *string
}

// RenderBill renders an invoice PDF.
func (r *Renderer) RenderBill(b *bill.Bill, s *settings.Settings) ([]byte, error) {
	h := header{
		banner:       "INVOICE",
		partyLabel:   "BILLED TO:",
		number:       b.Number,
		date:         b.CreatedAt,
		customerName: b.CustomerName,
		phone:        b.MobileNumber,
		email:        b.Email,
		address:      b.Address,
		gstin:        b.GSTIN,
	}
	if b.PaymentMode != nil && *b.PaymentMode != "" {
		h.extraLabel = "Payment Mode"
		h.extraValue = *b.PaymentMode
	}

	return r.render(h, billLines(b), b.Subtotal, b.TaxTotal, b.TotalAmount, s)
}

// billLines maps bill positions onto table rows. Line.Amount already
// carries base plus tax, so it prints as the Total column unchanged.
func billLines(b *bill.Bill) []line {
	lines := make([]line, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, line{
			name:      itemName(l.ItemName),
			hsnSAC:    deref(l.HSNSACNumber),
			quantity:  l.Quantity,
			price:     l.Price,
			taxRate:   l.TaxRate,
			taxAmount: l.TaxAmount,
			total:     l.Amount,
		})
	}
	return lines
}

// RenderQuotation renders a quotation PDF.
func (r *Renderer) RenderQuotation(qt *quotation.Quotation, s *settings.Settings) ([]byte, error) {
	h := header{
		banner:       "QUOTATION",
		partyLabel:   "QUOTED TO:",
		number:       qt.Number,
		date:         qt.CreatedAt,
		extraLabel:   "Valid Until",
		extraValue:   qt.ValidUntil.Format("02/01/2006"),
		customerName: qt.CustomerName,
		phone:        qt.MobileNumber,
		email:        qt.Email,
		address:      qt.Address,
		gstin:        qt.GSTIN,
	}

	return r.render(h, quotationLines(qt), qt.Subtotal, qt.TaxTotal, qt.TotalAmount, s)
}

func quotationLines(qt *quotation.Quotation) []line {
	lines := make([]line, 0, len(qt.Lines))
	for _, l := range qt.Lines {
		lines = append(lines, line{
			name:      itemName(l.ItemName),
			hsnSAC:    deref(l.HSNSACNumber),
			quantity:  l.Quantity,
			price:     l.Price,
			taxRate:   l.TaxRate,
			taxAmount: l.TaxAmount,
			total:     l.Amount,
		})
	}
	return lines
}

func (r *Renderer) render(h header, lines []line, subtotal, taxTotal, grandTotal types.Money, s *settings.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(14, 8, 8)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// Top banner
	setFill(pdf, primaryColor)
	setText(pdf, white)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(contentW, 9, h.banner, "", 1, "CM", true, 0, "")
	pdf.Ln(2)

	// Company name
	if s != nil && s.CompanyName != "" {
		setText(pdf, primaryColor)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(contentW, 8, s.CompanyName, "", 1, "LM", false, 0, "")
	}
	pdf.Ln(1)

	boxTop := pdf.GetY()

	// Customer box (left)
	custW := 67.0
	setDraw(pdf, primaryColor)
	pdf.SetXY(left, boxTop)
	setText(pdf, primaryColor)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(custW, 6, h.partyLabel, "", 2, "LM", false, 0, "")

	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(custW, 5, h.customerName, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	writeOptional(pdf, custW, "Phone", h.phone)
	writeOptional(pdf, custW, "Email", h.email)
	writeOptional(pdf, custW, "Address", h.address)
	writeOptional(pdf, custW, "GSTIN", h.gstin)
	custBottom := pdf.GetY()
	pdf.Rect(left-1, boxTop-1, custW+2, custBottom-boxTop+2, "D")

	// Seller details box (right)
	sellerX := left + contentW - 106
	sellerW := 106.0
	pdf.SetXY(sellerX, boxTop)
	setText(pdf, primaryColor)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(sellerW, 6, "SELLER'S DETAILS", "", 2, "LM", false, 0, "")

	setText(pdf, secondaryColor)
	pdf.SetFont("Helvetica", "", 9)
	if s != nil {
		writeSellerRow(pdf, sellerX, sellerW, "Address", s.Address)
		writeSellerRow(pdf, sellerX, sellerW, "Tel", s.Phone)
		writeSellerRow(pdf, sellerX, sellerW, "Email", s.Email)
		writeSellerRow(pdf, sellerX, sellerW, "GSTIN", s.GSTIN)
		writeSellerRow(pdf, sellerX, sellerW, "Bank Name", s.BankName)
		writeSellerRow(pdf, sellerX, sellerW, "Acc No", s.BankAccountNumber)
		writeSellerRow(pdf, sellerX, sellerW, "IFSC", s.IFSCCode)
	}
	sellerBottom := pdf.GetY()
	pdf.Rect(sellerX-1, boxTop-1, sellerW+2, sellerBottom-boxTop+2, "D")

	// Number/date box under the seller details
	numTop := sellerBottom + 3
	pdf.SetXY(sellerX, numTop)
	setDraw(pdf, accentColor)
	setText(pdf, accentColor)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(sellerW, 6, fmt.Sprintf("%s #%s", h.banner, h.number), "", 2, "LM", false, 0, "")
	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(sellerX)
	pdf.CellFormat(sellerW, 5, "Date: "+h.date.Format("02/01/2006"), "", 2, "LM", false, 0, "")
	if h.extraLabel != "" {
		pdf.SetX(sellerX)
		pdf.CellFormat(sellerW, 5, h.extraLabel+": "+h.extraValue, "", 2, "LM", false, 0, "")
	}
	numBottom := pdf.GetY()
	pdf.Rect(sellerX-1, numTop-1, sellerW+2, numBottom-numTop+2, "D")

	bodyTop := custBottom
	if numBottom > bodyTop {
		bodyTop = numBottom
	}
	pdf.SetY(bodyTop + 6)

	r.itemTable(pdf, contentW, lines, subtotal, taxTotal, grandTotal)

	// Terms, thank-you and footer
	pdf.Ln(6)
	setText(pdf, secondaryColor)
	pdf.SetFont("Helvetica", "", 6)
	terms := "Terms & Conditions: 1. Prices are subject to change without notice. " +
		"2. All prices are exclusive of taxes unless specified. 3. Payment terms to be discussed. " +
		"4. Subject to local jurisdiction. 5. E. & O.E."
	if h.banner == "QUOTATION" {
		terms = "Terms & Conditions: 1. This quotation is valid until the specified date. " + terms[len("Terms & Conditions: "):]
	}
	pdf.MultiCell(contentW, 3, terms, "", "L", false)
	pdf.Ln(2)

	setText(pdf, primaryColor)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 7, "THANK YOU FOR YOUR BUSINESS!", "", 1, "CM", false, 0, "")

	setText(pdf, secondaryColor)
	pdf.SetFont("Helvetica", "", 6)
	footer := fmt.Sprintf("This is a computer generated %s, no signature required.", bannerNoun(h.banner))
	pdf.CellFormat(contentW, 4, footer, "", 1, "CM", false, 0, "")

	// Stamp box bottom-right
	pdf.Ln(8)
	stampW := 55.0
	stampX := left + contentW - stampW
	stampY := pdf.GetY()
	setDraw(pdf, primaryColor)
	pdf.Rect(stampX, stampY, stampW, 20, "D")
	pdf.SetXY(stampX, stampY+1)
	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(stampW, 5, "Stamp & Signature", "", 1, "CM", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", bannerNoun(h.banner), err)
	}

	return buf.Bytes(), nil
}

// itemTable draws the 7-column line table with totals rows.
func (r *Renderer) itemTable(pdf *gofpdf.Fpdf, contentW float64, lines []line, subtotal, taxTotal, grandTotal types.Money) {
	widths := []float64{0.28, 0.13, 0.09, 0.13, 0.09, 0.13, 0.15}
	headers := []string{"Item Description", "HSN/SAC", "Qty", "Unit Price", "Tax %", "Tax Amt", "Total"}

	setFill(pdf, primaryColor)
	setText(pdf, white)
	setDraw(pdf, rgb{211, 211, 211})
	pdf.SetFont("Helvetica", "B", 9)
	for i, title := range headers {
		pdf.CellFormat(widths[i]*contentW, 8, title, "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)

	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "", 8)
	for i, l := range lines {
		fill := i%2 == 0
		if fill {
			setFill(pdf, lightBG)
		}
		cells := []string{
			l.name,
			l.hsnSAC,
			fmt.Sprintf("%d", l.quantity),
			l.price.StringFixed(2),
			l.taxRate.StringFixed(1) + "%",
			l.taxAmount.StringFixed(2),
			l.total.StringFixed(2),
		}
		for j, cell := range cells {
			align := "CM"
			if j == 0 {
				align = "LM"
			}
			pdf.CellFormat(widths[j]*contentW, 7, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals block, right-aligned against the last two columns
	spanW := contentW * (widths[0] + widths[1] + widths[2] + widths[3] + widths[4])
	labelW := contentW * widths[5]
	valueW := contentW * widths[6]

	totals := []struct {
		label string
		value types.Money
		bold  bool
	}{
		{"Subtotal:", subtotal, false},
		{"Total Tax:", taxTotal, false},
		{"TOTAL:", grandTotal, true},
	}

	for _, row := range totals {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(spanW, 7, "", "", 0, "CM", false, 0, "")
		pdf.CellFormat(labelW, 7, row.label, "T", 0, "RM", false, 0, "")
		setText(pdf, primaryColor)
		pdf.CellFormat(valueW, 7, row.value.StringFixed(2), "T", 1, "RM", false, 0, "")
		setText(pdf, textColor)
	}
}

func writeOptional(pdf *gofpdf.Fpdf, width float64, label string, value *string) {
	if value == nil || *value == "" {
		return
	}
	pdf.MultiCell(width, 5, label+": "+*value, "", "L", false)
}

func writeSellerRow(pdf *gofpdf.Fpdf, x, width float64, label, value string) {
	if value == "" {
		return
	}
	pdf.SetX(x)
	pdf.MultiCell(width, 4, label+": "+value, "", "L", false)
}

func itemName(name *string) string {
	if name == nil || *name == "" {
		return missingItemName
	}
	return *name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func bannerNoun(banner string) string {
	if banner == "QUOTATION" {
		return "quotation"
	}
	return "invoice"
}

func setFill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
