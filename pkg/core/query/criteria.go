package query

import (
	"fmt"
	"strings"
)

// All is the sentinel criterion value that imposes no constraint
const All = "all"

// Criteria is the set of constraints the list pages filter by.
// An empty or "all" value imposes no constraint.
type Criteria struct {
	Text     string
	Category string
	Severity string
	Status   string
	Location string
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

func mergeValue(base, override string) string {
	if isSet(override) {
		return override
	}
	return base
}

// Merge returns c with every constrained value of other applied on top
func (c Criteria) Merge(other Criteria) Criteria {
	return Criteria{
		Text:     mergeValue(c.Text, other.Text),
		Category: mergeValue(c.Category, other.Category),
		Severity: mergeValue(c.Severity, other.Severity),
		Status:   mergeValue(c.Status, other.Status),
		Location: mergeValue(c.Location, other.Location),
	}
}

// IsEmpty reports whether c imposes no constraint at all
func (c Criteria) IsEmpty() bool {
	return !isSet(c.Text) && !isSet(c.Category) && !isSet(c.Severity) && !isSet(c.Status) && !isSet(c.Location)
}

func (c Criteria) String() string {
	var parts []string
	add := func(name, v string) {
		if isSet(v) {
			parts = append(parts, fmt.Sprintf("%s=%q", name, strings.TrimSpace(v)))
		}
	}
	add("text", c.Text)
	add("category", c.Category)
	add("severity", c.Severity)
	add("status", c.Status)
	add("location", c.Location)
	if len(parts) == 0 {
		return All
	}
	return strings.Join(parts, " ")
}
