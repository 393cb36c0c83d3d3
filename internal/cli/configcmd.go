package cli

import (
	"context"

	"github.com/spf13/cobra"

	"metalwatch/internal/store"
	"metalwatch/pkg/utils"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration and stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if output.IsJSON() {
				return output.JSON(app.Config)
			}

			output.Bold("Quote source")
			output.Printf("  URL:     %s\n", app.Config.Source.BaseURL)
			output.Printf("  Timeout: %s\n", app.Config.Source.Timeout)
			output.Println()

			output.Bold("Preferences")
			output.Printf("  Metal:  %s\n", store.GetString(ctx, app.Store, store.KeySelectedMetal, "XAU"))
			output.Printf("  Unit:   %s\n", store.GetString(ctx, app.Store, store.KeySelectedUnit, "1g"))
			output.Printf("  Carat:  %dK\n", store.GetInt(ctx, app.Store, store.KeySelectedCarat, 22))
			output.Printf("  Theme:  dark=%v\n", store.GetBool(ctx, app.Store, store.KeyThemeDark))
			if masked := store.GetString(ctx, app.Store, store.KeyEmailMasked, ""); masked != "" {
				output.Printf("  Email:  %s\n", masked)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference (metal, unit, carat, theme, email)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			key, value := args[0], args[1]
			switch key {
			case "metal":
				return app.Store.Set(ctx, store.KeySelectedMetal, value)
			case "unit":
				return app.Store.Set(ctx, store.KeySelectedUnit, value)
			case "carat":
				return app.Store.Set(ctx, store.KeySelectedCarat, value)
			case "theme":
				return app.Store.Set(ctx, store.KeyThemeDark, value)
			case "email":
				// Only the masked form is shown back; the full address is
				// stored for delivery because setting it is the opt-in.
				if err := app.Store.Set(ctx, store.KeyEmailAddress, value); err != nil {
					return err
				}
				return app.Store.Set(ctx, store.KeyEmailMasked, utils.MaskEmail(value))
			default:
				output.Error("Unknown preference: %s", key)
				return nil
			}
		},
	})

	return cmd
}
