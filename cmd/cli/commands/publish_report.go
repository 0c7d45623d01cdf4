package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/services"
)

// PublishReportCmd creates the publishReport command
func PublishReportCmd(app *AppContext) *cobra.Command {
	var (
		filters criteriaFlags
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "publishReport",
		Short: "Publish a situation report to the report spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.BuildSituationReport(
				app.Ctx,
				app.Stores.Emergencies,
				app.Stores.Resources,
				app.Logger,
				filters.criteria(),
				app.now(),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "\nSituation report (%d emergencies, not published)\n\n", len(report.Rows))
				for _, row := range report.Rows {
					fmt.Fprintf(out, "- %s [%s/%s] %s\n", row.ID, row.Severity, row.Status, row.Title)
				}
				fmt.Fprintln(out)
				return nil
			}

			if app.Publisher == nil {
				return fmt.Errorf("report publishing is not available")
			}
			publisher, err := app.Publisher()
			if err != nil {
				return fmt.Errorf("failed to connect to Google Sheets: %w", err)
			}

			if err := services.PublishSituationReport(app.Ctx, publisher, app.Cfg, app.Logger, report); err != nil {
				return err
			}

			app.Logger.Debug("publishReport command completed", zap.Int("rows", len(report.Rows)))
			fmt.Fprintf(out, "\n✓ Situation report published with %d emergencies\n\n", len(report.Rows))
			return nil
		},
	}

	filters.bind(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report without publishing it")
	return cmd
}
