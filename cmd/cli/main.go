package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/cmd/cli/commands"
	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/clients/sheetsclient"
	"github.com/jakechorley/connect-care/pkg/core/analyzer"
	"github.com/jakechorley/connect-care/pkg/core/services"
	"github.com/jakechorley/connect-care/pkg/db"
	"github.com/jakechorley/connect-care/pkg/utils/logging"
)

var (
	env    string
	logDir string
	app    = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "connect-care",
		Short: "Connect Care CLI - Coordinate emergency response",
		Long: `A CLI for coordinating emergency response: report emergencies, register NGOs,
volunteers and resources, browse and filter them, and publish situation reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for log files")

	rootCmd.AddCommand(commands.ListCmd(app))
	rootCmd.AddCommand(commands.GetCmd(app))
	rootCmd.AddCommand(commands.StatsCmd(app))
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.NearbyCmd(app))
	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.ReportEmergencyCmd(app))
	rootCmd.AddCommand(commands.ReportNGOCmd(app))
	rootCmd.AddCommand(commands.ReportVolunteerCmd(app))
	rootCmd.AddCommand(commands.ReportResourceCmd(app))
	rootCmd.AddCommand(commands.UpdateCmd(app))
	rootCmd.AddCommand(commands.DeleteCmd(app))
	rootCmd.AddCommand(commands.ResetCmd(app))
	rootCmd.AddCommand(commands.AnalyzeCmd(app))
	rootCmd.AddCommand(commands.PublishReportCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the seeded in-memory stores
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Analyzer = analyzer.KeywordAnalyzer{}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration, the defaults are enough to run locally
	app.Cfg, err = config.LoadWithEnv(env)
	if errors.Is(err, config.ErrConfigNotFound) {
		app.Logger.Info("No configuration file found, using defaults")
		app.Cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Load seed data
	var catalog *db.Catalog
	if app.Cfg.SeedFile != "" {
		app.Logger.Info("Loading seed file", zap.String("path", app.Cfg.SeedFile))
		catalog, err = db.LoadCatalogFile(app.Cfg.SeedFile)
	} else {
		catalog, err = db.LoadCatalog()
	}
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	minLatency, maxLatency := app.Cfg.LatencyRange()
	app.Stores = db.NewStores(catalog,
		db.WithDelay(db.RandomDelay(minLatency, maxLatency)),
		db.WithLogger(app.Logger),
	)
	app.Logger.Debug("Stores initialized",
		zap.Int("emergencies", app.Stores.Emergencies.Len()),
		zap.Int("ngos", app.Stores.NGOs.Len()),
		zap.Int("volunteers", app.Stores.Volunteers.Len()),
		zap.Int("resources", app.Stores.Resources.Len()))

	app.Publisher = sheetsPublisher()

	return nil
}

// sheetsPublisher connects to Google Sheets on first use and reuses the client
func sheetsPublisher() func() (services.ReportPublisher, error) {
	var (
		once   sync.Once
		client *sheetsclient.Client
		err    error
	)
	return func() (services.ReportPublisher, error) {
		once.Do(func() {
			app.Logger.Info("Loading OAuth client configuration")
			var oauthCfg *config.OAuthClientConfig
			oauthCfg, err = config.LoadOAuthClientWithEnv(env)
			if err != nil {
				err = fmt.Errorf("failed to load OAuth client config: %w", err)
				return
			}

			app.Logger.Info("Initializing sheets client")
			client, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
			if err != nil {
				err = fmt.Errorf("failed to create sheets client: %w", err)
			}
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
