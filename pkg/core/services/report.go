package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/clients/sheetsclient"
	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/db"
)

// ErrNoReportSheet is returned when publishing without a configured spreadsheet
var ErrNoReportSheet = errors.New("reportSheetID is not configured")

// ReportPublisher writes a situation report to a spreadsheet
type ReportPublisher interface {
	PublishReport(spreadsheetID string, report *sheetsclient.SituationReport) error
}

// BuildSituationReport selects the emergencies matching criteria, newest first,
// and lists the resources assigned to each
func BuildSituationReport(
	ctx context.Context,
	emergencies db.Lister[model.Emergency],
	resources db.Lister[model.Resource],
	logger *zap.Logger,
	criteria query.Criteria,
	now time.Time,
) (*sheetsclient.SituationReport, error) {
	logger.Debug("Starting buildSituationReport", zap.Stringer("criteria", criteria))

	var (
		allEmergencies []model.Emergency
		allResources   []model.Resource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		allEmergencies, err = emergencies.List(gctx, db.DefaultSort, -1)
		return wrapLoad(model.KindEmergency, err)
	})
	g.Go(func() (err error) {
		allResources, err = resources.List(gctx, "name", -1)
		return wrapLoad(model.KindResource, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assigned := make(map[string][]string)
	for _, r := range allResources {
		for _, id := range r.EmergencyIDs {
			assigned[id] = append(assigned[id], r.Name)
		}
	}

	selected := query.Filter(allEmergencies, criteria)
	rows := make([]sheetsclient.SituationReportRow, 0, len(selected))
	for _, e := range selected {
		affected := ""
		if e.AffectedPeople != nil {
			affected = strconv.Itoa(*e.AffectedPeople)
		}
		rows = append(rows, sheetsclient.SituationReportRow{
			ID:                e.ID,
			Title:             e.Title,
			Category:          model.EnumLabel(e.Category),
			Severity:          model.EnumLabel(e.Severity),
			Status:            model.EnumLabel(e.Status),
			Location:          e.Location,
			AffectedPeople:    affected,
			PriorityNeeds:     e.PriorityNeeds,
			AssignedResources: assigned[e.ID],
		})
	}

	logger.Debug("Built situation report", zap.Int("rows", len(rows)))

	return &sheetsclient.SituationReport{
		GeneratedAt: now,
		Filter:      criteria.String(),
		Rows:        rows,
	}, nil
}

// PublishSituationReport writes a report to the configured spreadsheet
func PublishSituationReport(
	ctx context.Context,
	publisher ReportPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	report *sheetsclient.SituationReport,
) error {
	if cfg.ReportSheetID == "" {
		return ErrNoReportSheet
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("Publishing situation report",
		zap.String("spreadsheet_id", cfg.ReportSheetID),
		zap.Int("rows", len(report.Rows)))

	if err := publisher.PublishReport(cfg.ReportSheetID, report); err != nil {
		return fmt.Errorf("failed to publish situation report: %w", err)
	}

	logger.Info("Situation report published")
	return nil
}
