package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/db"
)

const (
	dashboardLoadLimit  = 50
	dashboardActiveShow = 5
)

// DashboardStores are the collections the dashboard reads
type DashboardStores struct {
	Emergencies db.Lister[model.Emergency]
	NGOs        db.Lister[model.NGO]
	Resources   db.Lister[model.Resource]
	Volunteers  db.Lister[model.Volunteer]
}

// Dashboard is the coordination overview
type Dashboard struct {
	ActiveEmergencies   int // active or responding
	VerifiedNGOs        int
	AvailableResources  int
	AvailableVolunteers int

	ActiveList        []model.Emergency // most recent active or responding emergencies
	SeverityBreakdown []query.Bucket    // over active or responding emergencies
	ResourceStatus    []query.Bucket    // resources per availability
	NextBriefings     []time.Time
}

func isOngoing(e model.Emergency) bool {
	return e.Status == model.StatusActive || e.Status == model.StatusResponding
}

// DashboardStats loads the four collections concurrently and summarises them.
// Briefing times are the next occurrences of the configured rule after now.
func DashboardStats(
	ctx context.Context,
	stores DashboardStores,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) (*Dashboard, error) {
	logger.Debug("Starting dashboardStats")

	var (
		emergencies []model.Emergency
		ngos        []model.NGO
		resources   []model.Resource
		volunteers  []model.Volunteer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emergencies, err = stores.Emergencies.List(gctx, db.DefaultSort, dashboardLoadLimit)
		return wrapLoad(model.KindEmergency, err)
	})
	g.Go(func() (err error) {
		ngos, err = stores.NGOs.List(gctx, db.DefaultSort, dashboardLoadLimit)
		return wrapLoad(model.KindNGO, err)
	})
	g.Go(func() (err error) {
		resources, err = stores.Resources.List(gctx, db.DefaultSort, dashboardLoadLimit)
		return wrapLoad(model.KindResource, err)
	})
	g.Go(func() (err error) {
		volunteers, err = stores.Volunteers.List(gctx, db.DefaultSort, dashboardLoadLimit)
		return wrapLoad(model.KindVolunteer, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Loaded dashboard data",
		zap.Int("emergencies", len(emergencies)),
		zap.Int("ngos", len(ngos)),
		zap.Int("resources", len(resources)),
		zap.Int("volunteers", len(volunteers)))

	var ongoing []model.Emergency
	for _, e := range emergencies {
		if isOngoing(e) {
			ongoing = append(ongoing, e)
		}
	}

	dash := &Dashboard{
		ActiveEmergencies:   len(ongoing),
		VerifiedNGOs:        query.Count(ngos, func(n model.NGO) bool { return n.Verified }),
		AvailableResources:  query.Count(resources, func(r model.Resource) bool { return r.Availability == model.StockAvailable }),
		AvailableVolunteers: query.Count(volunteers, func(v model.Volunteer) bool { return v.Availability == model.AvailabilityAvailable }),
		ActiveList:          db.Limit(ongoing, dashboardActiveShow),
		SeverityBreakdown:   query.Sorted(query.Aggregate(ongoing, "severity")),
		ResourceStatus:      query.Sorted(query.Aggregate(resources, "availability")),
	}

	briefings, err := nextBriefings(cfg, now)
	if err != nil {
		return nil, err
	}
	dash.NextBriefings = briefings

	return dash, nil
}

func wrapLoad(kind model.Kind, err error) error {
	if err != nil {
		return fmt.Errorf("failed to load %s records: %w", kind, err)
	}
	return nil
}

// nextBriefings returns the next scheduled situation briefings strictly after now
func nextBriefings(cfg *config.Config, now time.Time) ([]time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rule, count, err := cfg.Briefings(startOfDay)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, count)
	after := now
	for len(times) < count {
		next := rule.After(after, false)
		if next.IsZero() {
			break
		}
		times = append(times, next)
		after = next
	}
	return times, nil
}
