package export

import (
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont     = "Helvetica"
	pdfMargin   = 10.0
	pdfRowH     = 7.0
	pdfFontSize = 9.0
)

// WritePDF renders t as a landscape table with a header row on every page.
func WritePDF(w io.Writer, t Table) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin)
	if n := len(t.Headers); n > 0 {
		colW /= float64(n)
	}

	header := func() {
		pdf.SetFont(pdfFont, "B", pdfFontSize)
		pdf.SetFillColor(230, 236, 245)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfRowH, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", pdfFontSize)
	}
	pdf.SetHeaderFuncMode(func() {
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
		header()
	}, true)

	pdf.AddPage()
	for _, row := range t.Rows {
		for i := range t.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colW, pdfRowH, tr(fit(pdf, cell, colW)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// WriteReportPDF renders r as a portrait page of label/value lines.
func WriteReportPDF(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 20, 14)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	for _, f := range r.Fields {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(50, 8, tr(f.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 12)
		pdf.MultiCell(0, 8, tr(f.Value), "", "L", false)
	}
	return pdf.Output(w)
}

// fit truncates s so it stays inside one cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
