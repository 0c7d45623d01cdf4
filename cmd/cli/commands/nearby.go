package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/services"
)

// NearbyCmd creates the nearby command
func NearbyCmd(app *AppContext) *cobra.Command {
	var (
		radius float64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "nearby <emergency_id>",
		Short: "Find available volunteers near an emergency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := radius
			if r <= 0 {
				r = app.Cfg.RadiusKm()
			}
			app.Logger.Debug("nearby command", zap.String("emergency_id", args[0]), zap.Float64("radius_km", r))

			nearby, err := services.NearbyVolunteers(app.Ctx, app.Stores.Emergencies, app.Stores.Volunteers, app.Logger, args[0], r, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d available volunteers within %.0f km of %s\n\n", len(nearby), r, args[0])
			for _, n := range nearby {
				fmt.Fprintf(out, "  %6.1f km  %s (%s) %s\n", n.DistanceKm, n.Volunteer.FullName, n.Volunteer.ID, n.Volunteer.Phone)
				printCoordinates(out, n.Volunteer.Coordinates)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Search radius in km (0 uses nearbyRadiusKm from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", -1, "Maximum volunteers to show (negative shows all)")
	return cmd
}
