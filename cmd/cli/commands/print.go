package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/utils/geo"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// severityColor highlights the severities that need attention first
func severityColor(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return colorRed
	case model.SeverityHigh:
		return colorYellow
	case model.SeverityLow:
		return colorDim
	}
	return ""
}

func colored(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + colorReset
}

func printTabs(w io.Writer, tabs []query.Tab) {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		parts = append(parts, fmt.Sprintf("%s (%d)", t.Value, t.Count))
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(parts, " | "))
}

func printBuckets(w io.Writer, title string, buckets []query.Bucket) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(buckets) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "  %-22s %d\n", b.Value, b.Count)
	}
}

func printEmergencies(w io.Writer, records []model.Emergency) {
	for _, e := range records {
		sev := model.EnumLabel(e.Severity)
		fmt.Fprintf(w, "- %s [%s] %s\n", e.ID, colored(severityColor(e.Severity), sev), e.Title)
		fmt.Fprintf(w, "    %s | %s | %s\n", model.EnumLabel(e.Category), model.EnumLabel(e.Status), e.Location)
		if e.AffectedPeople != nil {
			fmt.Fprintf(w, "    Affected: %d\n", *e.AffectedPeople)
		}
		if len(e.PriorityNeeds) > 0 {
			fmt.Fprintf(w, "    Needs: %s\n", strings.Join(e.PriorityNeeds, ", "))
		}
	}
}

func printNGOs(w io.Writer, records []model.NGO) {
	for _, n := range records {
		badge := colored(colorDim, model.NGOUnverified)
		if n.Verified {
			badge = colored(colorGreen, model.NGOVerified)
		}
		fmt.Fprintf(w, "- %s [%s] %s\n", n.ID, badge, n.Name)
		fmt.Fprintf(w, "    %s | %s | %d volunteers\n",
			strings.Join(model.Values(n.Specializations), ", "), n.Location, n.VolunteerCount)
		if len(n.ServiceAreas) > 0 {
			fmt.Fprintf(w, "    Serves: %s\n", strings.Join(n.ServiceAreas, ", "))
		}
	}
}

func printVolunteers(w io.Writer, records []model.Volunteer) {
	for _, v := range records {
		avail := model.EnumLabel(v.Availability)
		if v.Availability == model.AvailabilityAvailable {
			avail = colored(colorGreen, avail)
		}
		fmt.Fprintf(w, "- %s [%s] %s (%s)\n", v.ID, avail, v.FullName, model.EnumLabel(v.ExperienceLevel))
		fmt.Fprintf(w, "    %s | %s\n", v.Location, strings.Join(model.Values(v.Skills), ", "))
	}
}

func printResources(w io.Writer, records []model.Resource) {
	for _, r := range records {
		fmt.Fprintf(w, "- %s [%s] %s: %d %s\n", r.ID, model.EnumLabel(r.Availability), r.Name, r.Quantity, r.Unit)
		fmt.Fprintf(w, "    %s | %s | %s\n", model.EnumLabel(r.Category), r.ProviderNGO, r.Location)
		if len(r.EmergencyIDs) > 0 {
			fmt.Fprintf(w, "    Assigned to: %s\n", strings.Join(r.EmergencyIDs, ", "))
		}
	}
}

func printCoordinates(w io.Writer, c *model.Coordinates) {
	if s := geo.FormatCoordinates(c); s != "" {
		fmt.Fprintf(w, "    At: %s\n", s)
	}
}
