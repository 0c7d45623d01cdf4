package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	var filters criteriaFlags

	cmd := &cobra.Command{
		Use:   "stats <ngo|volunteer|resource>",
		Short: "Show the summary cards of a list page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c := filters.criteria()
			limit := app.Cfg.Limit()

			switch kind {
			case model.KindVolunteer:
				s, err := services.VolunteerStats(app.Ctx, app.Stores.Volunteers, app.Logger, c, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nVolunteers matching %s\n", c)
				fmt.Fprintf(out, "  Available:       %d\n", s.Available)
				fmt.Fprintf(out, "  Verified:        %d\n", s.Verified)
				fmt.Fprintf(out, "  Experts:         %d\n", s.Experts)
				fmt.Fprintf(out, "  Distinct skills: %d\n\n", s.DistinctSkills)
			case model.KindResource:
				s, err := services.ResourceStats(app.Ctx, app.Stores.Resources, app.Logger, c, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nResources matching %s\n", c)
				fmt.Fprintf(out, "  Available: %d\n", s.Available)
				fmt.Fprintf(out, "  Reserved:  %d\n", s.Reserved)
				fmt.Fprintf(out, "  Deployed:  %d\n", s.Deployed)
				fmt.Fprintf(out, "  Providers: %d\n\n", s.DistinctProviders)
			case model.KindNGO:
				s, err := services.NGOStats(app.Ctx, app.Stores.NGOs, app.Logger, c, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nNGOs matching %s\n", c)
				fmt.Fprintf(out, "  Verified:         %d\n", s.Verified)
				fmt.Fprintf(out, "  Pending review:   %d\n", s.Unverified)
				fmt.Fprintf(out, "  Volunteers:       %d\n", s.TotalVolunteers)
				fmt.Fprintf(out, "  Areas served:     %d\n\n", s.DistinctServiceAreas)
			default:
				return fmt.Errorf("no stats for %s records, use the dashboard command", kind)
			}
			return nil
		},
	}

	filters.bind(cmd)
	return cmd
}
