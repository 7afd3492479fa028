package reports

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/mrlokans/library-manager/internal/entities"
)

const (
	pdfFont      = "Arial"
	pdfRowHeight = 10
)

type pdfColumn struct {
	header string
	width  float64
	value  func(entities.Book) string
}

var pdfColumns = []pdfColumn{
	{"Title", 50, func(b entities.Book) string { return b.Title }},
	{"Author", 50, func(b entities.Book) string { return b.Author }},
	{"Genre", 40, func(b entities.Book) string { return b.Genre }},
	{"Status", 40, func(b entities.Book) string { return string(b.Status) }},
}

// GeneratePDF renders the books as a bordered table under a "{username}'s
// Library" title on A4 portrait pages.
func GeneratePDF(books []entities.Book, username string) ([]byte, error) {
	pdf := buildPDF(books, username)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPDF(books []entities.Book, username string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts use cp1252, so UTF-8 text has to be translated first
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, pdfRowHeight, tr(fmt.Sprintf("%s's Library", username)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont(pdfFont, "B", 12)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, pdfRowHeight, col.header, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 12)
	for _, book := range books {
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, tr(col.value(book)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}
