package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/connect-care/pkg/core/services"
)

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the coordination overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stores := services.DashboardStores{
				Emergencies: app.Stores.Emergencies,
				NGOs:        app.Stores.NGOs,
				Resources:   app.Stores.Resources,
				Volunteers:  app.Stores.Volunteers,
			}
			dash, err := services.DashboardStats(app.Ctx, stores, app.Cfg, app.Logger, app.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nConnect Care overview\n\n")
			fmt.Fprintf(out, "  Active emergencies:   %d\n", dash.ActiveEmergencies)
			fmt.Fprintf(out, "  Verified NGOs:        %d\n", dash.VerifiedNGOs)
			fmt.Fprintf(out, "  Available resources:  %d\n", dash.AvailableResources)
			fmt.Fprintf(out, "  Available volunteers: %d\n\n", dash.AvailableVolunteers)

			fmt.Fprintln(out, "Active emergencies:")
			if len(dash.ActiveList) == 0 {
				fmt.Fprintln(out, "  No active emergencies")
			} else {
				printEmergencies(out, dash.ActiveList)
			}
			fmt.Fprintln(out)

			printBuckets(out, "Active by severity", dash.SeverityBreakdown)
			printBuckets(out, "Resources by availability", dash.ResourceStatus)

			fmt.Fprintln(out, "\nNext situation briefings:")
			for _, t := range dash.NextBriefings {
				fmt.Fprintf(out, "  %s\n", t.Format("Mon Jan 02 15:04 MST"))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
