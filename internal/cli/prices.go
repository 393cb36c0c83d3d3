package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"metalwatch/internal/analysis"
	"metalwatch/internal/models"
	"metalwatch/internal/store"
	"metalwatch/internal/units"
	"metalwatch/pkg/utils"
)

const commandTimeout = 30 * time.Second

func newPricesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices [metal]",
		Short: "Show the latest prices",
		Long:  "Show the latest quote for one metal, or the full ticker for all tracked metals.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			metal := app.resolveMetal(ctx, arg)
			sel := app.resolveSelection(ctx, metal)

			quote, err := app.Source.Latest(ctx, metal.Symbol)
			if err != nil {
				output.Error("Failed to fetch prices: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(quote)
			}

			price := units.ActivePrice(quote, metal, sel)
			output.Bold("%s — %s", units.Label(metal, sel), utils.DisplayDate(quote.Date))
			output.Printf("  %-6s %s\n", sel.Unit, utils.FormatINR(price))
			for _, u := range units.ValidUnits(metal) {
				if u == sel.Unit {
					continue
				}
				alt := units.ActivePrice(quote, metal, models.UnitSelection{Unit: u, Carat: sel.Carat})
				output.Printf("  %-6s %s\n", u, utils.FormatINR(alt))
			}
			return nil
		},
	}
	return cmd
}

func newCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <metal>",
		Short: "Compare today against yesterday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			metal := app.resolveMetal(ctx, args[0])
			sel := app.resolveSelection(ctx, metal)

			cq, err := app.Source.Comparison(ctx, metal.Symbol)
			if err != nil {
				output.Error("Failed to fetch comparison: %v", err)
				return err
			}

			cmpResult := analysis.Compare(cq.Today, cq.Yesterday, metal, sel)
			if cmpResult == nil {
				output.Warning("No comparison available for %s (missing price data)", metal.Name)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(cmpResult)
			}

			output.Bold("%s (%s)", units.Label(metal, sel), sel.Unit)
			output.Printf("  Today:      %s\n", utils.FormatINR(units.ActivePrice(cq.Today, metal, sel)))
			output.Printf("  Yesterday:  %s\n", utils.FormatINR(units.ActivePrice(cq.Yesterday, metal, sel)))
			output.Printf("  Change:     %s %s", output.Direction(cmpResult.Difference), utils.FormatINR(cmpResult.Difference))
			if cmpResult.Percentage != nil {
				output.Printf(" (%.2f%%)", *cmpResult.Percentage)
			}
			output.Println()

			// Remember the selection for the next invocation.
			_ = app.Store.Set(ctx, store.KeySelectedMetal, metal.Symbol)
			return nil
		},
	}
	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <metal>",
		Short: "Show the monthly price chart scale and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			month, _ := cmd.Flags().GetString("month")
			metal := app.resolveMetal(ctx, args[0])
			sel := app.resolveSelection(ctx, metal)

			history, err := app.Source.History(ctx, metal.Symbol, month)
			if err != nil {
				output.Error("Failed to fetch history: %v", err)
				return err
			}

			prices := analysis.ActivePrices(history.Quotes, metal, sel)
			chartRange := analysis.Range(prices)
			stats := analysis.ComputeStats(prices)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"range": chartRange,
					"stats": stats,
					"month": history.SelectedMonth,
				})
			}

			output.Bold("%s — %s (%s)", units.Label(metal, sel), history.SelectedMonth, sel.Unit)
			output.Printf("  Axis:     %.2f – %.2f\n", chartRange.Min, chartRange.Max)
			output.Printf("  Lowest:   %s\n", utils.FormatINR(stats.Min))
			output.Printf("  Highest:  %s\n", utils.FormatINR(stats.Max))
			output.Printf("  Average:  %s\n", utils.FormatINR(stats.Avg))
			if len(history.AvailableMonths) > 0 {
				output.Dim("  Months:   %v", history.AvailableMonths)
			}
			return nil
		},
	}
	cmd.Flags().String("month", "", "Month to chart (YYYY-MM)")
	return cmd
}
