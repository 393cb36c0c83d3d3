package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"metalwatch/internal/models"
	"metalwatch/pkg/utils"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <metal> <target_price|percentage_change> <value>",
		Short: "Add a price alert",
		Example: `  metalwatch alerts add gold target_price 7500
  metalwatch alerts add silver percentage_change 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			metal := app.resolveMetal(ctx, args[0])
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				output.Error("Invalid value: %s", args[2])
				return err
			}

			if err := app.Engine.Load(ctx); err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}

			rule, err := app.Engine.Add(ctx, metal.Symbol, models.AlertType(args[1]), value)
			if err != nil {
				output.Error("Failed to add alert: %v", err)
				return err
			}

			output.Success("Alert %s created for %s", rule.ID, metal.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Engine.Load(ctx); err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}

			rules := app.Engine.Rules()
			if output.IsJSON() {
				return output.JSON(rules)
			}

			if len(rules) == 0 {
				output.Info("No alerts configured")
				return nil
			}

			for _, r := range rules {
				state := output.Green("enabled")
				if !r.Enabled {
					state = output.Red("disabled")
				}
				threshold := utils.FormatINR(r.Value)
				if r.Type == models.AlertPercentChange {
					threshold = strconv.FormatFloat(r.Value, 'f', -1, 64) + "%"
				}
				output.Printf("  %s  %-4s %-18s %-10s %s\n", r.ID, r.Metal, r.Type, threshold, state)
			}
			return nil
		},
	})

	cmd.AddCommand(toggleCmd(app, "enable", true))
	cmd.AddCommand(toggleCmd(app, "disable", false))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Engine.Load(ctx); err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}
			if err := app.Engine.Delete(ctx, args[0]); err != nil {
				output.Error("Failed to delete alert: %v", err)
				return err
			}
			output.Success("Alert deleted")
			return nil
		},
	})

	return cmd
}

func toggleCmd(app *App, verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: verb + " an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Engine.Load(ctx); err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}
			if err := app.Engine.Toggle(ctx, args[0], enabled); err != nil {
				output.Error("Failed to %s alert: %v", verb, err)
				return err
			}
			output.Success("Alert %sd", verb)
			return nil
		},
	}
}
