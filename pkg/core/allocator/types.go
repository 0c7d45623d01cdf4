package allocator

import (
	"slices"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/utils/geo"
)

// teamSizes is the number of volunteers each emergency is staffed with, by severity
var teamSizes = map[model.Severity]int{
	model.SeverityCritical: 4,
	model.SeverityHigh:     3,
	model.SeverityMedium:   2,
	model.SeverityLow:      1,
}

// TeamSize returns how many volunteers an emergency of the given severity needs
func TeamSize(s model.Severity) int {
	if n, ok := teamSizes[s]; ok {
		return n
	}
	return 1
}

// NeedsLead reports whether a team for this severity must include a lead
func NeedsLead(s model.Severity) bool {
	return s == model.SeverityCritical || s == model.SeverityHigh
}

// CanLead reports whether a volunteer is experienced enough to lead a team
func CanLead(v model.Volunteer) bool {
	return v.ExperienceLevel == model.ExperienceAdvanced || v.ExperienceLevel == model.ExperienceExpert
}

var experienceRank = map[model.ExperienceLevel]int{
	model.ExperienceExpert:       3,
	model.ExperienceAdvanced:     2,
	model.ExperienceIntermediate: 1,
}

var severityRank = map[model.Severity]int{
	model.SeverityCritical: 3,
	model.SeverityHigh:     2,
	model.SeverityMedium:   1,
}

// Assignment is one volunteer placed on a team
type Assignment struct {
	Volunteer  model.Volunteer
	DistanceKm float64
	Lead       bool
}

// Team is the group of volunteers being deployed to one emergency
type Team struct {
	Emergency model.Emergency
	Size      int
	Members   []Assignment
}

// IsFull checks if the team has reached its target size
func (t *Team) IsFull() bool {
	return len(t.Members) >= t.Size
}

// RemainingCapacity returns how many more volunteers the team can take
func (t *Team) RemainingCapacity() int {
	return max(t.Size-len(t.Members), 0)
}

// HasLead reports whether a lead has been assigned
func (t *Team) HasLead() bool {
	return slices.ContainsFunc(t.Members, func(a Assignment) bool { return a.Lead })
}

// Skills returns the distinct skills already present on the team
func (t *Team) Skills() []model.Skill {
	var out []model.Skill
	for _, m := range t.Members {
		for _, s := range m.Volunteer.Skills {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Candidate is an available volunteer who has not yet been placed
type Candidate struct {
	Volunteer model.Volunteer
	Assigned  bool
}

// DistanceTo returns the great-circle distance to the team's emergency.
// ok is false if either side has no coordinates.
func (c *Candidate) DistanceTo(t *Team) (km float64, ok bool) {
	if c.Volunteer.Coordinates == nil || t.Emergency.Coordinates == nil {
		return 0, false
	}
	return geo.Haversine(*c.Volunteer.Coordinates, *t.Emergency.Coordinates), true
}

// PlanState is the in-progress deployment plan
type PlanState struct {
	Teams      []*Team
	Candidates []*Candidate
}

// TeamValidationError represents a validation error for a specific team
type TeamValidationError struct {
	EmergencyID   string
	CriterionName string
	Description   string
}
