package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	var (
		radius float64
		apply  bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Propose volunteer teams for active and responding emergencies",
		Long: `Propose volunteer teams for active and responding emergencies.

Each emergency gets a team sized by severity. High and critical teams
need an advanced or expert lead. Use --apply to mark the planned
volunteers as on assignment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := radius
			if r <= 0 {
				r = app.Cfg.RadiusKm()
			}
			app.Logger.Debug("plan command", zap.Float64("radius_km", r), zap.Bool("apply", apply))

			outcome, err := services.PlanDeployments(app.Ctx, app.Stores.Emergencies, app.Stores.Volunteers, app.Logger, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nDeployment plan (volunteers within %.0f km)\n\n", r)
			for _, team := range outcome.Teams {
				e := team.Emergency
				fmt.Fprintf(out, "%s %s (%s) %d/%d\n", colored(severityColor(e.Severity), "["+string(e.Severity)+"]"), e.Title, e.ID, len(team.Members), team.Size)
				for _, m := range team.Members {
					role := ""
					if m.Lead {
						role = " lead"
					}
					fmt.Fprintf(out, "  %6.1f km  %s (%s)%s\n", m.DistanceKm, m.Volunteer.FullName, m.Volunteer.ID, role)
				}
			}

			if len(outcome.Unassigned) > 0 {
				fmt.Fprintf(out, "\nUnassigned: %d\n", len(outcome.Unassigned))
				for _, v := range outcome.Unassigned {
					fmt.Fprintf(out, "  %s (%s) %s\n", v.FullName, v.ID, v.Location)
				}
			}

			if outcome.Success {
				fmt.Fprintln(out, "\n✓ Every team is fully staffed")
			} else {
				fmt.Fprintf(out, "\n%d problems:\n", len(outcome.ValidationErrors))
				for _, e := range outcome.ValidationErrors {
					fmt.Fprintf(out, "  %s %s: %s\n", e.EmergencyID, e.CriterionName, e.Description)
				}
			}

			if apply {
				n, err := services.ApplyDeployment(app.Ctx, app.Stores.Volunteers, app.Logger, outcome)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n✓ %d volunteers marked on assignment\n", n)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Maximum distance in km (0 uses nearbyRadiusKm from config)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Mark planned volunteers as on assignment")
	return cmd
}
