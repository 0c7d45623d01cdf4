package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/db"
	"github.com/jakechorley/connect-care/pkg/utils/geo"
)

// ErrNoCoordinates is returned when an emergency has no position to search around
var ErrNoCoordinates = errors.New("emergency has no coordinates")

// NearbyVolunteer is an available volunteer and their distance from the emergency
type NearbyVolunteer struct {
	Volunteer  model.Volunteer
	DistanceKm float64
}

// NearbyVolunteers lists available volunteers within radiusKm of an emergency, nearest first.
// Volunteers without coordinates are skipped. A negative limit returns every match.
func NearbyVolunteers(
	ctx context.Context,
	emergencies db.RecordStore[model.Emergency],
	volunteers db.Lister[model.Volunteer],
	logger *zap.Logger,
	emergencyID string,
	radiusKm float64,
	limit int,
) ([]NearbyVolunteer, error) {
	logger.Debug("Starting nearbyVolunteers",
		zap.String("emergency_id", emergencyID),
		zap.Float64("radius_km", radiusKm))

	emergency, err := emergencies.Get(ctx, emergencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get emergency: %w", err)
	}
	if emergency.Coordinates == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCoordinates, emergencyID)
	}

	all, err := volunteers.List(ctx, "", -1)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	var nearby []NearbyVolunteer
	for _, v := range all {
		if v.Availability != model.AvailabilityAvailable || v.Coordinates == nil {
			continue
		}
		d := geo.Haversine(*emergency.Coordinates, *v.Coordinates)
		if d <= radiusKm {
			nearby = append(nearby, NearbyVolunteer{Volunteer: v, DistanceKm: d})
		}
	}

	slices.SortStableFunc(nearby, func(a, b NearbyVolunteer) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return 0
	})

	nearby = db.Limit(nearby, limit)
	logger.Debug("Found nearby volunteers", zap.Int("count", len(nearby)))
	return nearby, nil
}
