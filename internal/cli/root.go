package cli

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"metalwatch/internal/alerts"
	"metalwatch/internal/config"
	"metalwatch/internal/models"
	"metalwatch/internal/notify"
	"metalwatch/internal/source"
	"metalwatch/internal/store"
	"metalwatch/internal/units"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.KVStore
	Source     source.QuoteSource
	Engine     *alerts.Engine
	Dispatcher notify.Dispatcher
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Local key-value store; memory fallback keeps read paths working when
	// the on-disk store cannot be opened.
	dbPath := filepath.Join(config.DefaultConfigDir(), "metalwatch.db")
	kv, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Falling back to in-memory store")
		app.Store = store.NewMemoryStore()
	} else {
		app.Store = kv
	}

	app.Source = source.NewClient(cfg.Source.BaseURL, cfg.Source.Timeout, logger)

	dispatcher := notify.NewMultiDispatcher(&cfg.Notifications, logger)
	// An address stored via `config set email` is the delivery opt-in and
	// overrides the static config recipient.
	if addr := store.GetString(context.Background(), app.Store, store.KeyEmailAddress, ""); addr != "" {
		dispatcher.SetEmailRecipient(cfg.Notifications.Email, addr)
	}
	app.Dispatcher = dispatcher

	app.Engine = alerts.NewEngine(app.Store, app.Dispatcher, logger)

	rootCmd := &cobra.Command{
		Use:     "metalwatch",
		Short:   "Daily precious-metal price analytics and alerting",
		Version: Version,
		Long: `metalwatch tracks daily gold, silver and platinum quotes, computes
day-over-day comparisons, evaluates price alerts and exports CSV/PDF reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(newPricesCmd(app))
	rootCmd.AddCommand(newCompareCmd(app))
	rootCmd.AddCommand(newChartCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newWatchCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

// resolveMetal looks a metal up by CLI argument, falling back to the stored
// selection and then to gold.
func (a *App) resolveMetal(ctx context.Context, arg string) models.Metal {
	if arg != "" {
		if m, ok := models.MetalBySymbol(arg); ok {
			return m
		}
	}
	stored := store.GetString(ctx, a.Store, store.KeySelectedMetal, "")
	if m, ok := models.MetalBySymbol(stored); ok {
		return m
	}
	return models.TrackedMetals[0]
}

// resolveSelection reads the stored unit/carat selection, defaulting to the
// metal's first valid unit and 22K for gold.
func (a *App) resolveSelection(ctx context.Context, m models.Metal) models.UnitSelection {
	valid := units.ValidUnits(m)
	sel := models.UnitSelection{Unit: valid[0]}

	if stored := store.GetString(ctx, a.Store, store.KeySelectedUnit, ""); stored != "" {
		for _, u := range valid {
			if string(u) == stored {
				sel.Unit = u
			}
		}
	}

	if units.IsGold(m) {
		sel.Carat = models.Carat(store.GetInt(ctx, a.Store, store.KeySelectedCarat, int(units.DefaultCarat)))
		switch sel.Carat {
		case models.Carat18, models.Carat22, models.Carat24:
		default:
			sel.Carat = units.DefaultCarat
		}
	}

	return sel
}
