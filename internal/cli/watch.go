package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"metalwatch/internal/analysis"
	"metalwatch/internal/models"
	"metalwatch/internal/notify"
	"metalwatch/internal/ticker"
	"metalwatch/internal/units"
	"metalwatch/pkg/utils"
)

func newWatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch prices and evaluate alerts",
		Long: `Poll the quote source, run an alert evaluation pass on every fresh
observation and keep a cross-metal ticker up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			interval, _ := cmd.Flags().GetDuration("interval")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := app.Engine.Load(ctx); err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}

			tk := ticker.New(app.Source, 3, app.Logger)
			tk.Start()
			defer tk.Stop()

			gate := notify.NewDailyGate(app.Store)

			output.Info("Watching %d metals every %s (Ctrl+C to stop)", len(models.TrackedMetals), interval)

			tick := time.NewTicker(interval)
			defer tick.Stop()

			for {
				app.observeAll(ctx, output, tk, gate)
				select {
				case <-ctx.Done():
					output.Println()
					output.Info("Stopped")
					return nil
				case <-tick.C:
				}
			}
		},
	}
	cmd.Flags().Duration("interval", 5*time.Minute, "Polling interval")
	return cmd
}

// observeAll fetches a fresh observation per metal, runs the synchronous
// alert pass for each and refreshes the background ticker. One metal's
// fetch failure never blocks the others.
func (a *App) observeAll(ctx context.Context, output *Output, tk *ticker.Ticker, gate *notify.DailyGate) {
	var summary []string

	for _, metal := range models.TrackedMetals {
		sel := a.resolveSelection(ctx, metal)

		cq, err := a.Source.Comparison(ctx, metal.Symbol)
		if err != nil {
			a.Logger.Warn().Err(err).Str("metal", metal.Symbol).Msg("Observation fetch failed")
			continue
		}

		current := units.ActivePrice(cq.Today, metal, sel)
		yesterday := units.ActivePrice(cq.Yesterday, metal, sel)

		var yptr *float64
		if !isNaN(yesterday) {
			yptr = &yesterday
		}
		if isNaN(current) {
			continue
		}

		triggered := a.Engine.EvaluateAll(ctx, metal.Symbol, current, yptr)
		if triggered > 0 {
			output.Warning("%s: %d alert(s) fired at %s", metal.Name, triggered, utils.FormatINR(current))
		}

		line := fmt.Sprintf("%s %s", metal.Name, utils.FormatINR(current))
		if cmp := analysis.Compare(cq.Today, cq.Yesterday, metal, sel); cmp != nil {
			line = fmt.Sprintf("%s %s %s", line, output.Direction(cmp.Difference), utils.FormatINR(cmp.Difference))
		}
		summary = append(summary, line)
	}

	tk.Refresh(ctx, models.TrackedMetals, models.UnitSelection{Unit: models.Unit1g, Carat: units.DefaultCarat})

	if len(summary) > 0 && gate.ShouldSend(ctx) {
		title := "Today's metal prices"
		body := ""
		for i, s := range summary {
			if i > 0 {
				body += "\n"
			}
			body += s
		}
		if err := a.Dispatcher.NotifyLocal(ctx, title, body); err == nil {
			if err := gate.MarkSent(ctx); err != nil {
				a.Logger.Warn().Err(err).Msg("Recording daily notification failed")
			}
		}
	}
}

func isNaN(v float64) bool { return v != v }
