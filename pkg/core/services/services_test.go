package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/clients/sheetsclient"
	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/db"
)

// mockLister fails every List call
type mockLister[T any] struct {
	err error
}

func (m *mockLister[T]) List(ctx context.Context, sortSpec string, limit int) ([]T, error) {
	return nil, m.err
}

// mockPublisher records published reports
type mockPublisher struct {
	spreadsheetID string
	report        *sheetsclient.SituationReport
	err           error
}

func (m *mockPublisher) PublishReport(spreadsheetID string, report *sheetsclient.SituationReport) error {
	m.spreadsheetID = spreadsheetID
	m.report = report
	return m.err
}

func seededStores(t *testing.T) *db.Stores {
	t.Helper()
	catalog, err := db.LoadCatalog()
	require.NoError(t, err)
	return db.NewStores(catalog, db.WithDelay(db.NoDelay))
}

func dashboardStores(s *db.Stores) DashboardStores {
	return DashboardStores{
		Emergencies: s.Emergencies,
		NGOs:        s.NGOs,
		Resources:   s.Resources,
		Volunteers:  s.Volunteers,
	}
}

func emergencyIDs(records []model.Emergency) []string {
	out := make([]string, 0, len(records))
	for _, e := range records {
		out = append(out, e.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	stores := seededStores(t)
	ctx := context.Background()

	t.Run("filters and counts tabs over all loaded records", func(t *testing.T) {
		result, err := Browse[model.Emergency](ctx, stores.Emergencies, zap.NewNop(), BrowseOptions{
			Kind:     model.KindEmergency,
			Sort:     db.DefaultSort,
			Limit:    100,
			Criteria: query.Criteria{Severity: "critical"},
			GroupBy:  "status",
		})
		require.NoError(t, err)

		assert.Equal(t, 5, result.Total)
		assert.Equal(t, []string{"em001", "em002"}, emergencyIDs(result.Records))
		assert.Equal(t, []query.Tab{
			{Value: query.All, Count: 5},
			{Value: "active", Count: 2},
			{Value: "responding", Count: 2},
			{Value: "resolved", Count: 1},
			{Value: "monitoring", Count: 0},
		}, result.Tabs)
		assert.Equal(t, []query.Bucket{
			{Value: "active", Count: 1},
			{Value: "responding", Count: 1},
		}, result.Groups)
	})

	t.Run("limit applies before filtering", func(t *testing.T) {
		result, err := Browse[model.Emergency](ctx, stores.Emergencies, zap.NewNop(), BrowseOptions{
			Kind:     model.KindEmergency,
			Sort:     db.DefaultSort,
			Limit:    2,
			Criteria: query.Criteria{Status: "active"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, []string{"em001"}, emergencyIDs(result.Records))
		assert.Nil(t, result.Groups)
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := Browse[model.NGO](ctx, &mockLister[model.NGO]{err: errors.New("boom")}, zap.NewNop(), BrowseOptions{Kind: model.KindNGO})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list ngo records")
	})
}

func TestDashboardStats(t *testing.T) {
	stores := seededStores(t)
	cfg := config.Default()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	dash, err := DashboardStats(context.Background(), dashboardStores(stores), cfg, zap.NewNop(), now)
	require.NoError(t, err)

	assert.Equal(t, 4, dash.ActiveEmergencies)
	assert.Equal(t, 4, dash.VerifiedNGOs)
	assert.Equal(t, 4, dash.AvailableResources)
	assert.Equal(t, 4, dash.AvailableVolunteers)
	assert.Equal(t, []string{"em001", "em002", "em003", "em004"}, emergencyIDs(dash.ActiveList))
	assert.Equal(t, []query.Bucket{
		{Value: "critical", Count: 2},
		{Value: "high", Count: 2},
	}, dash.SeverityBreakdown)
	assert.Equal(t, []query.Bucket{
		{Value: "available", Count: 4},
		{Value: "deployed", Count: 1},
		{Value: "reserved", Count: 1},
	}, dash.ResourceStatus)
	assert.Equal(t, []time.Time{
		time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 20, 20, 0, 0, 0, time.UTC),
	}, dash.NextBriefings)
}

func TestDashboardStats_ActiveListCapped(t *testing.T) {
	stores := db.NewStores(nil, db.WithDelay(db.NoDelay))
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := stores.Emergencies.Create(ctx, model.Emergency{
			Title:    "incident",
			Category: model.EmergencyCategory("fire"),
			Severity: model.SeverityLow,
			Status:   model.StatusActive,
		})
		require.NoError(t, err)
	}

	dash, err := DashboardStats(ctx, dashboardStores(stores), config.Default(), zap.NewNop(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 7, dash.ActiveEmergencies)
	assert.Len(t, dash.ActiveList, 5)
	assert.Equal(t, 0, dash.VerifiedNGOs)
}

func TestDashboardStats_LoadFailure(t *testing.T) {
	stores := seededStores(t)
	ds := dashboardStores(stores)
	ds.Resources = &mockLister[model.Resource]{err: errors.New("unavailable")}

	_, err := DashboardStats(context.Background(), ds, config.Default(), zap.NewNop(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load resource records")
}

func TestDashboardStats_InvalidBriefingRule(t *testing.T) {
	cfg := config.Default()
	cfg.BriefingRRule = "FREQ=SOMETIMES"

	_, err := DashboardStats(context.Background(), dashboardStores(seededStores(t)), cfg, zap.NewNop(), time.Now())
	require.Error(t, err)
}

func TestPageStats(t *testing.T) {
	stores := seededStores(t)
	ctx := context.Background()
	logger := zap.NewNop()

	volunteers, err := VolunteerStats(ctx, stores.Volunteers, logger, query.Criteria{}, -1)
	require.NoError(t, err)
	assert.Equal(t, VolunteerSummary{Available: 4, Verified: 4, Experts: 2, DistinctSkills: 10}, volunteers)

	resources, err := ResourceStats(ctx, stores.Resources, logger, query.Criteria{}, -1)
	require.NoError(t, err)
	assert.Equal(t, ResourceSummary{Available: 4, Reserved: 1, Deployed: 1, DistinctProviders: 5}, resources)

	ngos, err := NGOStats(ctx, stores.NGOs, logger, query.Criteria{}, -1)
	require.NoError(t, err)
	assert.Equal(t, NGOSummary{Verified: 4, Unverified: 1, TotalVolunteers: 2500, DistinctServiceAreas: 6}, ngos)
}

func TestPageStats_Filtered(t *testing.T) {
	stores := seededStores(t)
	ctx := context.Background()

	volunteers, err := VolunteerStats(ctx, stores.Volunteers, zap.NewNop(), query.Criteria{Category: "search_rescue"}, -1)
	require.NoError(t, err)
	// vol001, vol005, vol006
	assert.Equal(t, VolunteerSummary{Available: 2, Verified: 2, Experts: 1, DistinctSkills: 5}, volunteers)

	resources, err := ResourceStats(ctx, stores.Resources, zap.NewNop(), query.Criteria{Category: "transportation"}, -1)
	require.NoError(t, err)
	assert.Equal(t, ResourceSummary{Available: 1, Deployed: 1, DistinctProviders: 2}, resources)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, VolunteerSummary{}, SummarizeVolunteers(nil))
	assert.Equal(t, ResourceSummary{}, SummarizeResources(nil))
	assert.Equal(t, NGOSummary{}, SummarizeNGOs(nil))
}

func TestNearbyVolunteers(t *testing.T) {
	stores := seededStores(t)
	ctx := context.Background()

	t.Run("within radius", func(t *testing.T) {
		nearby, err := NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), "em005", 50, -1)
		require.NoError(t, err)
		require.Len(t, nearby, 1)
		assert.Equal(t, "vol001", nearby[0].Volunteer.ID)
		assert.InDelta(t, 24.7, nearby[0].DistanceKm, 1)
	})

	t.Run("nearest first", func(t *testing.T) {
		nearby, err := NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), "em005", 400, -1)
		require.NoError(t, err)
		require.Len(t, nearby, 2)
		assert.Equal(t, "vol001", nearby[0].Volunteer.ID)
		assert.Equal(t, "vol006", nearby[1].Volunteer.ID)
		assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
	})

	t.Run("limit", func(t *testing.T) {
		nearby, err := NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), "em005", 400, 1)
		require.NoError(t, err)
		require.Len(t, nearby, 1)
		assert.Equal(t, "vol001", nearby[0].Volunteer.ID)
	})

	t.Run("volunteers on assignment are skipped", func(t *testing.T) {
		// vol005 is in Patna but on assignment
		nearby, err := NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), "em004", 50, -1)
		require.NoError(t, err)
		assert.Empty(t, nearby)
	})

	t.Run("unknown emergency", func(t *testing.T) {
		_, err := NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), "missing", 50, -1)
		require.Error(t, err)
		assert.True(t, db.IsNotFound(err))
	})

	t.Run("emergency without coordinates", func(t *testing.T) {
		created, err := stores.Emergencies.Create(ctx, model.Emergency{Title: "No position"})
		require.NoError(t, err)

		_, err = NearbyVolunteers(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), created.ID, 50, -1)
		assert.ErrorIs(t, err, ErrNoCoordinates)
	})
}

func TestBuildSituationReport(t *testing.T) {
	stores := seededStores(t)
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	report, err := BuildSituationReport(context.Background(), stores.Emergencies, stores.Resources, zap.NewNop(), query.Criteria{Status: "active"}, now)
	require.NoError(t, err)

	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, `status="active"`, report.Filter)
	require.Len(t, report.Rows, 2)

	flood := report.Rows[0]
	assert.Equal(t, "em001", flood.ID)
	assert.Equal(t, "natural_disaster", flood.Category)
	assert.Equal(t, "critical", flood.Severity)
	assert.Equal(t, "5000", flood.AffectedPeople)
	assert.Equal(t, []string{"boats", "medical_supplies", "food_packets"}, flood.PriorityNeeds)
	assert.Equal(t, []string{"Rescue Boats"}, flood.AssignedResources)

	fire := report.Rows[1]
	assert.Equal(t, "em003", fire.ID)
	assert.Equal(t, []string{"Temporary Shelters"}, fire.AssignedResources)
}

func TestBuildSituationReport_AllAndUnknown(t *testing.T) {
	stores := seededStores(t)
	ctx := context.Background()

	_, err := stores.Emergencies.Update(ctx, "em005", db.Patch{"severity": "apocalyptic", "affected_people": nil})
	require.NoError(t, err)

	report, err := BuildSituationReport(ctx, stores.Emergencies, stores.Resources, zap.NewNop(), query.Criteria{}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, query.All, report.Filter)
	require.Len(t, report.Rows, 5)
	last := report.Rows[4]
	assert.Equal(t, "em005", last.ID)
	assert.Equal(t, model.Unknown, last.Severity)
	assert.Empty(t, last.AffectedPeople)
	assert.Empty(t, last.AssignedResources)
}

func TestPublishSituationReport(t *testing.T) {
	report := &sheetsclient.SituationReport{GeneratedAt: time.Now()}

	t.Run("publishes to configured sheet", func(t *testing.T) {
		cfg := config.Default()
		cfg.ReportSheetID = "sheet-123"
		publisher := &mockPublisher{}

		err := PublishSituationReport(context.Background(), publisher, cfg, zap.NewNop(), report)
		require.NoError(t, err)
		assert.Equal(t, "sheet-123", publisher.spreadsheetID)
		assert.Same(t, report, publisher.report)
	})

	t.Run("requires a sheet id", func(t *testing.T) {
		publisher := &mockPublisher{}
		err := PublishSituationReport(context.Background(), publisher, config.Default(), zap.NewNop(), report)
		assert.ErrorIs(t, err, ErrNoReportSheet)
		assert.Nil(t, publisher.report)
	})

	t.Run("publisher failure", func(t *testing.T) {
		cfg := config.Default()
		cfg.ReportSheetID = "sheet-123"
		publisher := &mockPublisher{err: errors.New("quota exceeded")}

		err := PublishSituationReport(context.Background(), publisher, cfg, zap.NewNop(), report)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}

func TestPlanDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("staffs nearby emergencies from seed data", func(t *testing.T) {
		stores := seededStores(t)
		outcome, err := PlanDeployments(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), 50)
		require.NoError(t, err)

		var teams []string
		members := map[string][]string{}
		for _, team := range outcome.Teams {
			teams = append(teams, team.Emergency.ID)
			for _, m := range team.Members {
				members[team.Emergency.ID] = append(members[team.Emergency.ID], m.Volunteer.ID)
			}
		}
		assert.Equal(t, []string{"em001", "em002", "em003", "em004"}, teams)
		assert.Equal(t, map[string][]string{"em002": {"vol003"}, "em003": {"vol006"}}, members)
		assert.True(t, outcome.Teams[2].Members[0].Lead)
		assert.False(t, outcome.Teams[1].Members[0].Lead)

		var unassigned []string
		for _, v := range outcome.Unassigned {
			unassigned = append(unassigned, v.ID)
		}
		assert.Equal(t, []string{"vol001", "vol004"}, unassigned)

		var problems []string
		for _, e := range outcome.ValidationErrors {
			problems = append(problems, e.EmergencyID+" "+e.CriterionName)
		}
		assert.Equal(t, []string{
			"em001 TeamSize", "em002 TeamSize", "em003 TeamSize", "em004 TeamSize", "em002 TeamLead",
		}, problems)
		assert.False(t, outcome.Success)
	})

	t.Run("apply marks members on assignment", func(t *testing.T) {
		stores := seededStores(t)
		outcome, err := PlanDeployments(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), 50)
		require.NoError(t, err)

		n, err := ApplyDeployment(ctx, stores.Volunteers, zap.NewNop(), outcome)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for _, id := range []string{"vol003", "vol006"} {
			v, err := stores.Volunteers.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, model.AvailabilityOnAssignment, v.Availability)
		}

		again, err := PlanDeployments(ctx, stores.Emergencies, stores.Volunteers, zap.NewNop(), 50)
		require.NoError(t, err)
		assert.Len(t, again.Unassigned, 2)
		for _, team := range again.Teams {
			assert.Empty(t, team.Members)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		stores := seededStores(t)
		_, err := PlanDeployments(ctx, stores.Emergencies, &mockLister[model.Volunteer]{err: errors.New("boom")}, zap.NewNop(), 50)
		assert.ErrorContains(t, err, "failed to load volunteer records")
	})
}
