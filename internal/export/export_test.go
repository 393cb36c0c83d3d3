package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"metalwatch/internal/analysis"
	"metalwatch/internal/models"
	"metalwatch/pkg/utils"
)

var (
	gold = models.Metal{Symbol: "XAU", Name: "Gold"}
	sel  = models.UnitSelection{Unit: models.Unit1g, Carat: models.Carat22}
)

func sampleHistory() []models.Quote {
	return []models.Quote{
		{Date: "2026-08-01", Price1g: 7300, CaratPrices: map[string]float64{"22": 6686}},
		{Date: "2026-08-02", Price1g: 7350, CaratPrices: map[string]float64{"22": 6732}},
		{Date: "2026-08-03", Price1g: 7280, CaratPrices: map[string]float64{"22": 6668}},
	}
}

func TestBuildCSVShape(t *testing.T) {
	out := BuildCSV(sampleHistory(), gold, sel)

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 data lines, got %d lines", len(lines))
	}

	for i, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			t.Errorf("line %d has %d fields, want 4: %q", i, len(fields), line)
		}
		for _, f := range fields {
			if !strings.HasPrefix(f, `"`) || !strings.HasSuffix(f, `"`) {
				t.Errorf("field %q is not quote-wrapped", f)
			}
		}
	}

	if lines[0] != `"Date","Metal","Unit","Price"` {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "01 Aug 2026") {
		t.Errorf("first data row should carry the formatted date: %q", lines[1])
	}
	if !strings.Contains(lines[1], "Gold (22K)") {
		t.Errorf("gold rows should carry the carat suffix: %q", lines[1])
	}
}

func TestBuildCSVRoundTrip(t *testing.T) {
	out := BuildCSV(sampleHistory(), gold, sel)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("re-parsed %d records, want 4", len(records))
	}

	// The formatted values come back verbatim, including the grouped price.
	if records[1][3] != utils.FormatINR(6686) {
		t.Errorf("price field = %q, want %q", records[1][3], utils.FormatINR(6686))
	}
	if records[2][0] != "02 Aug 2026" {
		t.Errorf("date field = %q", records[2][0])
	}
}

func TestBuildCSVEmptyHistory(t *testing.T) {
	if out := BuildCSV(nil, gold, sel); out != "" {
		t.Errorf("empty history must be a no-op, got %q", out)
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	if got := CSVFilename(gold, sel, now); got != "metal-prices-xau-1g-20260827.csv" {
		t.Errorf("CSVFilename = %q", got)
	}
	if got := PDFFilename(gold, models.UnitSelection{Unit: models.Unit8g}, now); got != "metal-prices-xau-8g-20260827.pdf" {
		t.Errorf("PDFFilename = %q", got)
	}
}

func TestBuildPDFLayout(t *testing.T) {
	history := sampleHistory()
	generated := time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC)

	pct := 0.69
	cmp := &models.ComparisonResult{Difference: 50, Percentage: &pct, Direction: models.DirectionUp}

	layout := BuildPDFLayout(history, gold, sel, cmp, false, generated)
	if layout == nil {
		t.Fatal("layout must not be nil for a non-empty history")
	}

	if len(layout.Summary) != 7 {
		t.Errorf("summary has %d points, want 7", len(layout.Summary))
	}
	if len(layout.Rows) != len(history) {
		t.Errorf("table has %d rows, want %d", len(layout.Rows), len(history))
	}
	if layout.Comparison == "" {
		t.Error("comparison line missing despite a comparison result")
	}
	if layout.Palette != lightPalette {
		t.Error("light theme must select the light palette")
	}

	darkLayout := BuildPDFLayout(history, gold, sel, nil, true, generated)
	if darkLayout.Palette != darkPalette {
		t.Error("dark theme must select the dark palette")
	}
	if darkLayout.Comparison != "" {
		t.Error("comparison line must be absent without a comparison result")
	}
}

func TestBuildPDFLayoutEmptyHistory(t *testing.T) {
	if layout := BuildPDFLayout(nil, gold, sel, nil, false, time.Now()); layout != nil {
		t.Errorf("empty history must be a no-op, got %+v", layout)
	}

	data, err := RenderPDF(nil, nil)
	if err != nil || data != nil {
		t.Errorf("rendering a nil layout must be a silent no-op, got %v, %v", data, err)
	}
}

// The PDF summary and the on-screen summary must report identical figures:
// both go through analysis.ComputeStats on the same filtered series.
func TestPDFSummaryMatchesScreenStats(t *testing.T) {
	history := sampleHistory()
	prices := analysis.ActivePrices(history, gold, sel)
	stats := analysis.ComputeStats(prices)

	layout := BuildPDFLayout(history, gold, sel, nil, false, time.Now())

	want := map[string]string{
		"Lowest":  utils.FormatRs(stats.Min),
		"Highest": utils.FormatRs(stats.Max),
		"Average": utils.FormatRs(stats.Avg),
	}
	for _, item := range layout.Summary {
		if expect, ok := want[item.Label]; ok && item.Value != expect {
			t.Errorf("summary %s = %q, want %q", item.Label, item.Value, expect)
		}
	}
}

func TestRenderPDFWithFailingLogo(t *testing.T) {
	layout := BuildPDFLayout(sampleHistory(), gold, sel, nil, false, time.Now())

	failing := func() ([]byte, error) { return nil, os.ErrNotExist }
	data, err := RenderPDF(layout, failing)
	if err != nil {
		t.Fatalf("a failing logo must not abort the report: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("report is empty")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("output does not look like a PDF: %q", data[:5])
	}
}

func TestWriterReleasesPreviousSlot(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	defer w.Close()

	p1, err := w.Save("first.csv", []byte("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	p2, err := w.Save("second.csv", []byte("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if w.LastPath() != p2 {
		t.Errorf("LastPath = %q, want %q", w.LastPath(), p2)
	}
	if p1 == p2 {
		t.Error("distinct filenames must yield distinct paths")
	}

	// Both files exist; only the newest occupies the slot.
	if _, err := os.Stat(filepath.Join(dir, "first.csv")); err != nil {
		t.Errorf("first export vanished: %v", err)
	}

	// Empty data is a no-op that leaves the slot untouched.
	p3, err := w.Save("third.csv", nil)
	if err != nil || p3 != "" {
		t.Errorf("empty save = (%q, %v), want no-op", p3, err)
	}
	if w.LastPath() != p2 {
		t.Error("no-op save must not disturb the slot")
	}
}
