package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	apperrors "metalwatch/internal/errors"
)

// LogoLoader fetches the decorative logo asset. It is injected so that a
// missing or unreadable asset degrades to the layout's text fallback mark
// without aborting the report.
type LogoLoader func() ([]byte, error)

const (
	pageWidth  = 210.0
	marginLeft = 10.0
	bandHeight = 25.0
)

var tableWidths = []float64{40, 60, 30, 60}

// RenderPDF encodes a layout into PDF bytes. A nil layout (empty history)
// is a no-op and returns nil bytes with no error.
func RenderPDF(layout *Layout, logo LogoLoader) ([]byte, error) {
	if layout == nil {
		return nil, nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AliasNbPages("")
	pdf.SetMargins(marginLeft, 10, marginLeft)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("%s  |  Page %d of {nb}", layout.FooterBrand, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	drawHeaderBand(pdf, layout, logo)
	drawMeta(pdf, layout)
	drawSummary(pdf, layout)
	if layout.Comparison != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 7, layout.Comparison, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	drawTable(pdf, layout)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewExportError("pdf", "encode", err)
	}
	return buf.Bytes(), nil
}

func drawHeaderBand(pdf *fpdf.Fpdf, layout *Layout, logo LogoLoader) {
	h := layout.Palette.Header
	pdf.SetFillColor(h.R, h.G, h.B)
	pdf.Rect(0, 0, pageWidth, bandHeight, "F")

	mark := layout.FallbackMark
	if logo != nil {
		if data, err := logo(); err == nil && len(data) > 0 {
			opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
			pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
			if pdf.Ok() {
				pdf.ImageOptions("logo", marginLeft, 5, 15, 15, false, opts, 0, "")
				mark = ""
			}
		}
	}
	// A bad asset must never poison the rest of the document.
	pdf.ClearError()

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	x := marginLeft
	if mark != "" {
		pdf.SetXY(marginLeft, 8)
		pdf.CellFormat(14, 10, mark, "", 0, "L", false, 0, "")
		x += 14
	} else {
		x += 18
	}
	pdf.SetXY(x, 8)
	pdf.CellFormat(0, 10, layout.Title, "", 1, "L", false, 0, "")
	pdf.SetY(bandHeight + 5)
}

func drawMeta(pdf *fpdf.Fpdf, layout *Layout) {
	pdf.SetTextColor(0, 0, 0)
	for _, item := range layout.Meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, item.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, item.Value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func drawSummary(pdf *fpdf.Fpdf, layout *Layout) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range layout.Summary {
		pdf.CellFormat(35, 6, item.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.Value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func drawTable(pdf *fpdf.Fpdf, layout *Layout) {
	h := layout.Palette.Header
	pdf.SetFillColor(h.R, h.G, h.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for i, col := range layout.TableHeader {
		pdf.CellFormat(tableWidths[i], 8, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	alt := layout.Palette.AltRow
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for rowIdx, row := range layout.Rows {
		fill := rowIdx%2 == 1
		pdf.SetFillColor(alt.R, alt.G, alt.B)
		for i, cell := range row {
			pdf.CellFormat(tableWidths[i], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
