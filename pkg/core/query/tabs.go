package query

import (
	"github.com/jakechorley/connect-care/pkg/core/model"
)

// Tab is a status tab with the number of records it would show
type Tab struct {
	Value string
	Count int
}

// StatusTabs returns the status tab values a list page offers for kind, after "all"
func StatusTabs(kind model.Kind) []string {
	switch kind {
	case model.KindEmergency:
		return model.Values(model.AllEmergencyStatuses())
	case model.KindNGO:
		return []string{model.NGOVerified, model.NGOUnverified}
	case model.KindVolunteer:
		return model.Values(model.AllAvailabilities())
	case model.KindResource:
		return model.Values(model.AllResourceAvailabilities())
	}
	return nil
}

// TabCounts returns the "all" total followed by the count for each status tab
func TabCounts[T model.Filterable](records []T, tabs []string) []Tab {
	out := make([]Tab, 0, len(tabs)+1)
	out = append(out, Tab{Value: All, Count: len(records)})
	for _, tab := range tabs {
		out = append(out, Tab{
			Value: tab,
			Count: Count(records, func(rec T) bool { return matchesFacet(rec, model.FacetStatus, tab) }),
		})
	}
	return out
}
