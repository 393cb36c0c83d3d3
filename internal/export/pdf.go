package export

import (
	"fmt"
	"time"

	"metalwatch/internal/analysis"
	"metalwatch/internal/models"
	"metalwatch/internal/units"
	"metalwatch/pkg/utils"
)

// RGB is a palette color.
type RGB struct {
	R, G, B int
}

// Palette is the two-element theme switch: a header band color and an
// alternating row shade. Colors are static, never computed.
type Palette struct {
	Header RGB
	AltRow RGB
}

var (
	lightPalette = Palette{Header: RGB{R: 184, G: 134, B: 11}, AltRow: RGB{R: 245, G: 240, B: 225}}
	darkPalette  = Palette{Header: RGB{R: 40, G: 40, B: 48}, AltRow: RGB{R: 225, G: 225, B: 232}}
)

// brandLine is the fixed footer text on every page.
const brandLine = "metalwatch - daily precious metal prices"

// MetaItem is one line of the report metadata block.
type MetaItem struct {
	Label string
	Value string
}

// SummaryItem is one point of the report summary block.
type SummaryItem struct {
	Label string
	Value string
}

// Layout is the deterministic PDF layout description, independent of the
// encoding library.
type Layout struct {
	Title        string
	Meta         []MetaItem
	Summary      []SummaryItem
	Comparison   string // empty when no comparison exists
	TableHeader  []string
	Rows         [][]string
	Palette      Palette
	Dark         bool
	FooterBrand  string
	FallbackMark string
}

// BuildPDFLayout assembles the report layout from a history run. The
// summary goes through analysis.ComputeStats, the same function the
// on-screen summary uses, so the two can never diverge. A nil return means
// the history was empty and the export is a no-op.
func BuildPDFLayout(history []models.Quote, m models.Metal, sel models.UnitSelection, cmp *models.ComparisonResult, dark bool, generatedAt time.Time) *Layout {
	if len(history) == 0 {
		return nil
	}

	label := units.Label(m, sel)
	prices := analysis.ActivePrices(history, m, sel)
	stats := analysis.ComputeStats(prices)

	first := history[0]
	last := history[len(history)-1]
	firstPrice := units.ActivePrice(first, m, sel)
	lastPrice := units.ActivePrice(last, m, sel)

	palette := lightPalette
	if dark {
		palette = darkPalette
	}

	layout := &Layout{
		Title: fmt.Sprintf("%s Price Report", label),
		Meta: []MetaItem{
			{Label: "Metal", Value: label},
			{Label: "Unit", Value: string(sel.Unit)},
			{Label: "Period", Value: fmt.Sprintf("%s to %s", utils.DisplayDate(first.Date), utils.DisplayDate(last.Date))},
			{Label: "Last updated", Value: utils.DisplayDate(last.Date)},
			{Label: "Generated", Value: generatedAt.Format("02 Jan 2006 15:04")},
		},
		Summary: []SummaryItem{
			{Label: "Lowest", Value: utils.FormatRs(stats.Min)},
			{Label: "Highest", Value: utils.FormatRs(stats.Max)},
			{Label: "Average", Value: utils.FormatRs(stats.Avg)},
			{Label: "Opening", Value: utils.FormatRs(firstPrice)},
			{Label: "Closing", Value: utils.FormatRs(lastPrice)},
			{Label: "Period change", Value: utils.FormatRs(lastPrice - firstPrice)},
			{Label: "Data points", Value: fmt.Sprintf("%d", len(history))},
		},
		TableHeader:  []string{"Date", "Metal", "Unit", "Price"},
		Palette:      palette,
		Dark:         dark,
		FooterBrand:  brandLine,
		FallbackMark: "[MW]",
	}

	if cmp != nil {
		layout.Comparison = comparisonLine(cmp)
	}

	for _, q := range history {
		layout.Rows = append(layout.Rows, []string{
			utils.DisplayDate(q.Date),
			label,
			string(sel.Unit),
			utils.FormatRs(units.ActivePrice(q, m, sel)),
		})
	}

	return layout
}

func comparisonLine(cmp *models.ComparisonResult) string {
	arrow := "unchanged"
	switch cmp.Direction {
	case models.DirectionUp:
		arrow = "up"
	case models.DirectionDown:
		arrow = "down"
	}
	if cmp.Percentage != nil {
		return fmt.Sprintf("Since yesterday: %s %s (%.2f%%)", arrow, utils.FormatRs(cmp.Difference), *cmp.Percentage)
	}
	return fmt.Sprintf("Since yesterday: %s %s", arrow, utils.FormatRs(cmp.Difference))
}
