package quote

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/maminech/sanitary/internal/model"
)

// WritePDF renders the quote as an A4 quotation document. Amounts are shown
// in the quote's currency; the derived display status is used so an elapsed
// PENDING quote prints as EXPIRED.
func WritePDF(q *model.Quote, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Quotation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Reference: %s", q.Reference))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", q.DisplayStatus(time.Now())))
	pdf.Ln(6)
	if !q.ValidUntil.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Valid until: %s", q.ValidUntil.Format("2006-01-02")))
		pdf.Ln(6)
	}
	if q.Notes != "" {
		pdf.Cell(0, 6, q.Notes)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(25, 7, "SKU", "1", 0, "L", true, 0, "")
	pdf.CellFormat(65, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Disc. %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range q.Items {
		pdf.CellFormat(25, 6, item.SKU, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	writeTotalLine(pdf, "Subtotal", q.Subtotal, q.Currency, false)
	if q.DiscountAmount > 0 {
		writeTotalLine(pdf, fmt.Sprintf("Discount (%.1f%%)", q.GlobalDiscount), -q.DiscountAmount, q.Currency, false)
	}
	writeTotalLine(pdf, fmt.Sprintf("Tax (%.1f%%)", q.TaxRate), q.TaxAmount, q.Currency, false)
	writeTotalLine(pdf, "Total", q.Total, q.Currency, true)

	return pdf.Output(w)
}

func writeTotalLine(pdf *gofpdf.Fpdf, label string, amount float64, currency string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, fmt.Sprintf("%.2f %s", amount, currency), "", 1, "R", false, 0, "")
}
