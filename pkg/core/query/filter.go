package query

import (
	"strings"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// Filter returns the records satisfying every constraint in c, in their original order.
// The result is never nil.
func Filter[T model.Filterable](records []T, c Criteria) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if Matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record satisfies c
func Matches[T model.Filterable](rec T, c Criteria) bool {
	if isSet(c.Text) && !matchesText(rec.SearchText(), c.Text) {
		return false
	}
	if isSet(c.Category) && !matchesFacet(rec, model.FacetCategory, c.Category) {
		return false
	}
	if isSet(c.Severity) && !matchesFacet(rec, model.FacetSeverity, c.Severity) {
		return false
	}
	if isSet(c.Status) && !matchesFacet(rec, model.FacetStatus, c.Status) {
		return false
	}
	if isSet(c.Location) && !matchesLocation(rec, c.Location) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesText(fields []string, text string) bool {
	text = strings.TrimSpace(text)
	for _, f := range fields {
		if containsFold(f, text) {
			return true
		}
	}
	return false
}

// A facet that does not apply to the record kind never matches a specific value
func matchesFacet[T model.Filterable](rec T, f model.Facet, want string) bool {
	values, ok := rec.Facet(f)
	if !ok {
		return false
	}
	want = strings.TrimSpace(want)
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func matchesLocation[T model.Filterable](rec T, location string) bool {
	v, ok := rec.Field("location")
	if !ok {
		return false
	}
	s, _ := v.(string)
	return containsFold(s, strings.TrimSpace(location))
}
