package sheetsclient

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"
)

// reportHeader is the fixed column layout of a published situation report.
// Columns to the right of it belong to coordinators and survive a re-publish.
var reportHeader = []interface{}{
	"ID", "Title", "Category", "Severity", "Status", "Location",
	"Affected people", "Priority needs", "Assigned resources",
}

// headerRowIndex is where the header sits, below the summary lines
const headerRowIndex = 2

// SituationReportRow is one emergency in a published report
type SituationReportRow struct {
	ID                string
	Title             string
	Category          string
	Severity          string
	Status            string
	Location          string
	AffectedPeople    string // blank when unknown
	PriorityNeeds     []string
	AssignedResources []string // resource names
}

// SituationReport is the complete data written to one tab
type SituationReport struct {
	GeneratedAt time.Time
	Filter      string // human readable filter the rows were selected with
	Rows        []SituationReportRow
}

// PublishReport writes a situation report to Google Sheets.
// The tab is named after the report time, e.g. "Situation Mon Oct 19 2026 08:00".
// If the tab already exists its report columns are overwritten and any extra
// columns (coordinator notes) are kept for emergencies still in the report.
func (c *Client) PublishReport(spreadsheetID string, report *SituationReport) error {
	tabTitle := reportTabTitle(report.GeneratedAt)

	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	exists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tabTitle {
			exists = true
			break
		}
	}

	values := buildReportValues(report)
	if !exists {
		if err := c.addTab(spreadsheetID, tabTitle); err != nil {
			return err
		}
	} else {
		existing, err := c.readRange(spreadsheetID, fmt.Sprintf("%s!A1:ZZ", tabTitle))
		if err != nil {
			return fmt.Errorf("failed to read existing tab data: %w", err)
		}
		values = mergeExtraColumns(existing, values)

		_, err = c.service.Spreadsheets.Values.Clear(
			spreadsheetID,
			fmt.Sprintf("%s!A1:ZZ", tabTitle),
			&sheets.ClearValuesRequest{},
		).Do()
		if err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	}

	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("%s!A1", tabTitle),
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	c.logger.Info("Published situation report",
		zap.String("tab", tabTitle),
		zap.Int("rows", len(report.Rows)),
		zap.Bool("replaced", exists))
	return nil
}

// reportTabTitle names a tab after the minute the report was generated
func reportTabTitle(generatedAt time.Time) string {
	return "Situation " + generatedAt.Format("Mon Jan 02 2006 15:04")
}

// buildReportValues lays out two summary lines, the header and one row per emergency
func buildReportValues(report *SituationReport) [][]interface{} {
	filter := report.Filter
	if filter == "" {
		filter = "all"
	}

	values := [][]interface{}{
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
		{"Filter", filter, "Emergencies", len(report.Rows)},
		reportHeader,
	}
	for _, row := range report.Rows {
		values = append(values, []interface{}{
			row.ID,
			row.Title,
			row.Category,
			row.Severity,
			row.Status,
			row.Location,
			row.AffectedPeople,
			strings.Join(row.PriorityNeeds, ", "),
			strings.Join(row.AssignedResources, ", "),
		})
	}
	return values
}

// mergeExtraColumns carries columns a coordinator added to the right of the
// report header over to the fresh values, matching rows by emergency ID
func mergeExtraColumns(existing, fresh [][]interface{}) [][]interface{} {
	if len(existing) <= headerRowIndex {
		return fresh
	}

	existingHeader := existing[headerRowIndex]
	idCol := findColumnIndex(existingHeader, "ID")
	if idCol == -1 || len(existingHeader) <= len(reportHeader) {
		return fresh
	}

	extraHeader := existingHeader[len(reportHeader):]
	extrasByID := make(map[string][]interface{})
	for _, row := range existing[headerRowIndex+1:] {
		if idCol >= len(row) {
			continue
		}
		id, ok := row[idCol].(string)
		if !ok || id == "" {
			continue
		}
		extras := make([]interface{}, len(extraHeader))
		for i := range extras {
			col := len(reportHeader) + i
			if col < len(row) {
				extras[i] = row[col]
			} else {
				extras[i] = ""
			}
		}
		extrasByID[id] = extras
	}

	merged := make([][]interface{}, 0, len(fresh))
	merged = append(merged, fresh[:headerRowIndex]...)
	header := append(append([]interface{}{}, fresh[headerRowIndex]...), extraHeader...)
	merged = append(merged, header)

	for _, row := range fresh[headerRowIndex+1:] {
		out := append([]interface{}{}, row...)
		id, _ := row[0].(string)
		if extras, ok := extrasByID[id]; ok {
			out = append(out, extras...)
		}
		merged = append(merged, out)
	}
	return merged
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && str == columnName {
			return i
		}
	}
	return -1
}
