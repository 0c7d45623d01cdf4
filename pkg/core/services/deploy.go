package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/connect-care/pkg/core/allocator"
	"github.com/jakechorley/connect-care/pkg/core/allocator/criteria"
	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/db"
)

// PlanDeployments proposes volunteer teams for every active or responding emergency.
// Volunteers are only sent within radiusKm of an emergency.
func PlanDeployments(
	ctx context.Context,
	emergencies db.Lister[model.Emergency],
	volunteers db.Lister[model.Volunteer],
	logger *zap.Logger,
	radiusKm float64,
) (*allocator.PlanOutcome, error) {
	logger.Debug("Starting planDeployments", zap.Float64("radius_km", radiusKm))

	var (
		ems  []model.Emergency
		vols []model.Volunteer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ems, err = emergencies.List(gctx, "", -1)
		return wrapLoad(model.KindEmergency, err)
	})
	g.Go(func() (err error) {
		vols, err = volunteers.List(gctx, "", -1)
		return wrapLoad(model.KindVolunteer, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome, err := allocator.Plan(allocator.PlanConfig{
		Criteria:    criteria.Default(radiusKm),
		Emergencies: ems,
		Volunteers:  vols,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan deployments: %w", err)
	}

	logger.Debug("Planned deployments",
		zap.Int("teams", len(outcome.Teams)),
		zap.Int("unassigned", len(outcome.Unassigned)),
		zap.Int("validation_errors", len(outcome.ValidationErrors)),
		zap.Bool("success", outcome.Success))
	return outcome, nil
}

// ApplyDeployment marks every planned team member as on assignment.
// It returns how many volunteers were updated before any failure.
func ApplyDeployment(
	ctx context.Context,
	volunteers db.RecordStore[model.Volunteer],
	logger *zap.Logger,
	outcome *allocator.PlanOutcome,
) (int, error) {
	var updated int
	for _, team := range outcome.Teams {
		for _, m := range team.Members {
			_, err := volunteers.Update(ctx, m.Volunteer.ID, db.Patch{"availability": string(model.AvailabilityOnAssignment)})
			if err != nil {
				return updated, fmt.Errorf("failed to assign volunteer %s to %s: %w", m.Volunteer.ID, team.Emergency.ID, err)
			}
			logger.Info("Volunteer assigned",
				zap.String("volunteer_id", m.Volunteer.ID),
				zap.String("emergency_id", team.Emergency.ID),
				zap.Bool("lead", m.Lead))
			updated++
		}
	}
	return updated, nil
}
