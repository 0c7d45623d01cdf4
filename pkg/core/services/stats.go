package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/db"
)

// VolunteerSummary holds the stat cards of the volunteers page
type VolunteerSummary struct {
	Available      int
	Verified       int
	Experts        int
	DistinctSkills int
}

// ResourceSummary holds the stat cards of the resources page
type ResourceSummary struct {
	Available         int
	Reserved          int
	Deployed          int
	DistinctProviders int
}

// NGOSummary holds the stat cards of the NGO page.
// Volunteer and service area figures count verified organisations only.
type NGOSummary struct {
	Verified             int
	Unverified           int
	TotalVolunteers      int
	DistinctServiceAreas int
}

// SummarizeVolunteers computes the volunteers page stat cards
func SummarizeVolunteers(volunteers []model.Volunteer) VolunteerSummary {
	return VolunteerSummary{
		Available:      query.Count(volunteers, func(v model.Volunteer) bool { return v.Availability == model.AvailabilityAvailable }),
		Verified:       query.Count(volunteers, func(v model.Volunteer) bool { return v.Verified }),
		Experts:        query.Count(volunteers, func(v model.Volunteer) bool { return v.ExperienceLevel == model.ExperienceExpert }),
		DistinctSkills: query.Distinct(volunteers, "skills"),
	}
}

// SummarizeResources computes the resources page stat cards
func SummarizeResources(resources []model.Resource) ResourceSummary {
	byStatus := query.Aggregate(resources, "availability")
	return ResourceSummary{
		Available:         byStatus[string(model.StockAvailable)],
		Reserved:          byStatus[string(model.StockReserved)],
		Deployed:          byStatus[string(model.StockDeployed)],
		DistinctProviders: query.Distinct(resources, "provider_ngo"),
	}
}

// SummarizeNGOs computes the NGO page stat cards
func SummarizeNGOs(ngos []model.NGO) NGOSummary {
	var verified []model.NGO
	for _, n := range ngos {
		if n.Verified {
			verified = append(verified, n)
		}
	}

	total := 0
	for _, n := range verified {
		total += n.VolunteerCount
	}

	return NGOSummary{
		Verified:             len(verified),
		Unverified:           len(ngos) - len(verified),
		TotalVolunteers:      total,
		DistinctServiceAreas: query.Distinct(verified, "service_areas"),
	}
}

// VolunteerStats loads volunteers matching criteria and summarises them
func VolunteerStats(ctx context.Context, store db.Lister[model.Volunteer], logger *zap.Logger, criteria query.Criteria, limit int) (VolunteerSummary, error) {
	records, err := loadFiltered(ctx, store, logger, model.KindVolunteer, criteria, limit)
	if err != nil {
		return VolunteerSummary{}, err
	}
	return SummarizeVolunteers(records), nil
}

// ResourceStats loads resources matching criteria and summarises them
func ResourceStats(ctx context.Context, store db.Lister[model.Resource], logger *zap.Logger, criteria query.Criteria, limit int) (ResourceSummary, error) {
	records, err := loadFiltered(ctx, store, logger, model.KindResource, criteria, limit)
	if err != nil {
		return ResourceSummary{}, err
	}
	return SummarizeResources(records), nil
}

// NGOStats loads NGOs matching criteria and summarises them
func NGOStats(ctx context.Context, store db.Lister[model.NGO], logger *zap.Logger, criteria query.Criteria, limit int) (NGOSummary, error) {
	records, err := loadFiltered(ctx, store, logger, model.KindNGO, criteria, limit)
	if err != nil {
		return NGOSummary{}, err
	}
	return SummarizeNGOs(records), nil
}

func loadFiltered[T model.Filterable](
	ctx context.Context,
	store db.Lister[T],
	logger *zap.Logger,
	kind model.Kind,
	criteria query.Criteria,
	limit int,
) ([]T, error) {
	records, err := store.List(ctx, db.DefaultSort, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	filtered := query.Filter(records, criteria)
	logger.Debug("Loaded records for stats",
		zap.String("kind", string(kind)),
		zap.Int("loaded", len(records)),
		zap.Int("matched", len(filtered)))
	return filtered, nil
}
