// Package export builds deterministic CSV and PDF reports from quote
// history. Layout is decided here; byte-level PDF encoding is delegated to
// the document library.
package export

import (
	"fmt"
	"strings"
	"time"

	"metalwatch/internal/models"
	"metalwatch/internal/units"
	"metalwatch/pkg/utils"
)

var csvHeader = []string{"Date", "Metal", "Unit", "Price"}

// BuildCSV renders a history run as CSV: a header row then one row per
// quote, ordered as received (date ascending). Every field is double-quote
// wrapped with internal quotes doubled. An empty history yields an empty
// string; the caller treats that as a no-op, not an error.
func BuildCSV(history []models.Quote, m models.Metal, sel models.UnitSelection) string {
	if len(history) == 0 {
		return ""
	}

	label := units.Label(m, sel)

	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, q := range history {
		writeCSVRow(&b, []string{
			utils.DisplayDate(q.Date),
			label,
			string(sel.Unit),
			utils.FormatINR(units.ActivePrice(q, m, sel)),
		})
	}

	// Rows are newline-joined; trim the trailing separator.
	return strings.TrimSuffix(b.String(), "\n")
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// CSVFilename builds the export filename for a metal and unit on a date.
func CSVFilename(m models.Metal, sel models.UnitSelection, now time.Time) string {
	return exportFilename(m, sel, now, "csv")
}

// PDFFilename builds the export filename for the PDF report.
func PDFFilename(m models.Metal, sel models.UnitSelection, now time.Time) string {
	return exportFilename(m, sel, now, "pdf")
}

func exportFilename(m models.Metal, sel models.UnitSelection, now time.Time, ext string) string {
	metal := strings.ToLower(m.Symbol)
	if metal == "" {
		metal = strings.ToLower(strings.ReplaceAll(m.Name, " ", "-"))
	}
	return fmt.Sprintf("metal-prices-%s-%s-%s.%s", metal, sel.Unit, utils.CompactDate(now), ext)
}
