package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/savvy/internal/money"
)

const (
	pageMargin   = 20.0
	bottomMargin = 15.0
	tableStartY  = 95.0
	rowHeight    = 6.0
	bodyFontSize = 8.0
)

// Column widths in mm; they sum to the A4 width minus both margins.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 22, "L"},
	{"Type", 18, "L"},
	{"Category", 34, "L"},
	{"Description", 66, "L"},
	{"Amount", 30, "R"},
}

var titleCase = cases.Title(language.English)

// WritePDF renders the summary header and a transaction table whose header row
// repeats on every page.
func (r *Report) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, bottomMargin)
	pdf.SetTitle("Financial Report", true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pageMargin, 20, "Financial Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageMargin, 35, "Report Period: "+r.Range.Label())
	pdf.Text(pageMargin, 45, "Generated on: "+r.GeneratedAt.Format("Jan 2, 2006"))

	pdf.Text(pageMargin, 60, "Total Income: "+money.Format(r.Totals.Income))
	pdf.Text(pageMargin, 70, "Total Expenses: "+money.Format(r.Totals.Expenses))
	pdf.Text(pageMargin, 80, "Net Balance: "+money.Format(r.Totals.Balance))

	pdf.SetY(tableStartY)
	tableHeader(pdf)

	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "", bodyFontSize)

	for _, tx := range r.Transactions {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			tableHeader(pdf)
			pdf.SetFont("Helvetica", "", bodyFontSize)
		}

		cells := []string{
			tx.Date.Format(time.DateOnly),
			titleCase.String(string(tx.Type)),
			tr(tx.Category),
			tr(tx.Description),
			money.Format(tx.Amount),
		}

		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, rowHeight, fit(pdf, cells[i], col.width-2), "1", 0, col.align, false, 0, "")
		}

		pdf.Ln(rowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: rendering pdf: %w", err)
	}

	return nil
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", bodyFontSize+1)
	pdf.SetFillColor(66, 139, 202)
	pdf.SetTextColor(255, 255, 255)

	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, rowHeight+1, col.title, "1", 0, "L", true, 0, "")
	}

	pdf.Ln(rowHeight + 1)
	pdf.SetTextColor(0, 0, 0)
}

// fit truncates s with an ellipsis until it fits width at the current font.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}

	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}

	return string(b) + "..."
}
