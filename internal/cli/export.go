package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"metalwatch/internal/analysis"
	"metalwatch/internal/config"
	"metalwatch/internal/export"
	"metalwatch/internal/logging"
	"metalwatch/internal/models"
	"metalwatch/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export price history reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "csv <metal>",
		Short: "Export monthly history as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			month, _ := cmd.Flags().GetString("month")
			dir, _ := cmd.Flags().GetString("output")
			metal := app.resolveMetal(ctx, args[0])
			sel := app.resolveSelection(ctx, metal)

			history, err := app.Source.History(ctx, metal.Symbol, month)
			if err != nil {
				output.Error("Failed to fetch history: %v", err)
				return err
			}

			data := export.BuildCSV(history.Quotes, metal, sel)
			if data == "" {
				output.Warning("No history for %s; nothing to export", metal.Name)
				return nil
			}

			writer := export.NewWriter(exportDir(dir))
			path, err := writer.Save(export.CSVFilename(metal, sel, time.Now()), []byte(data))
			if err != nil {
				output.Error("Failed to write CSV: %v", err)
				return err
			}

			logging.LogExport(app.Logger, "csv", filepath.Base(path), len(history.Quotes))
			output.Success("Exported %d rows to %s", len(history.Quotes), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pdf <metal>",
		Short: "Export monthly history as a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			month, _ := cmd.Flags().GetString("month")
			dir, _ := cmd.Flags().GetString("output")
			metal := app.resolveMetal(ctx, args[0])
			sel := app.resolveSelection(ctx, metal)

			history, err := app.Source.History(ctx, metal.Symbol, month)
			if err != nil {
				output.Error("Failed to fetch history: %v", err)
				return err
			}
			if len(history.Quotes) == 0 {
				output.Warning("No history for %s; nothing to export", metal.Name)
				return nil
			}

			// The comparison line is optional; a fetch failure just omits it.
			var cmpResult *models.ComparisonResult
			if cq, err := app.Source.Comparison(ctx, metal.Symbol); err == nil {
				cmpResult = analysis.Compare(cq.Today, cq.Yesterday, metal, sel)
			}

			dark := store.GetBool(ctx, app.Store, store.KeyThemeDark)
			layout := export.BuildPDFLayout(history.Quotes, metal, sel, cmpResult, dark, time.Now())

			data, err := export.RenderPDF(layout, logoLoader())
			if err != nil {
				output.Error("Failed to build PDF: %v", err)
				return err
			}

			writer := export.NewWriter(exportDir(dir))
			path, err := writer.Save(export.PDFFilename(metal, sel, time.Now()), data)
			if err != nil {
				output.Error("Failed to write PDF: %v", err)
				return err
			}

			logging.LogExport(app.Logger, "pdf", filepath.Base(path), len(history.Quotes))
			output.Success("Exported report to %s", path)
			return nil
		},
	})

	cmd.PersistentFlags().String("month", "", "Month to export (YYYY-MM)")
	cmd.PersistentFlags().StringP("output", "o", "", "Output directory (default: current directory)")

	return cmd
}

func exportDir(flag string) string {
	if flag != "" {
		return flag
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// logoLoader reads the optional brand logo from the config directory. A
// missing file degrades the header to the text fallback mark.
func logoLoader() export.LogoLoader {
	return func() ([]byte, error) {
		return os.ReadFile(filepath.Join(config.DefaultConfigDir(), "logo.png"))
	}
}
