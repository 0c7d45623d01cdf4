package criteria

import (
	"github.com/jakechorley/connect-care/pkg/core/allocator"
)

// TeamLeadCriterion ensures high and critical emergencies get an experienced lead.
//
// Validity:
//   - Returns false if the team still needs a lead, has one place left, and the
//     volunteer cannot lead. The last place is held for a lead.
//
// Affinity:
//   - 1.0 if the team needs a lead and the volunteer can lead
//
// Validation:
//   - A staffed high or critical team must have a lead
type TeamLeadCriterion struct {
	affinityWeight float64
}

// NewTeamLeadCriterion creates a new TeamLeadCriterion with the given weight
func NewTeamLeadCriterion(affinityWeight float64) *TeamLeadCriterion {
	return &TeamLeadCriterion{affinityWeight: affinityWeight}
}

func (c *TeamLeadCriterion) Name() string {
	return "TeamLead"
}

func (c *TeamLeadCriterion) PromoteCandidate(state *allocator.PlanState, candidate *allocator.Candidate) float64 {
	return 0
}

func (c *TeamLeadCriterion) IsTeamValid(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) bool {
	if !needsLead(team) {
		return true
	}
	return team.RemainingCapacity() > 1 || allocator.CanLead(candidate.Volunteer)
}

func (c *TeamLeadCriterion) CalculateTeamAffinity(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) float64 {
	if needsLead(team) && allocator.CanLead(candidate.Volunteer) {
		return 1
	}
	return 0
}

func (c *TeamLeadCriterion) ValidatePlan(state *allocator.PlanState) []allocator.TeamValidationError {
	var errs []allocator.TeamValidationError
	for _, team := range state.Teams {
		if len(team.Members) > 0 && needsLead(team) {
			errs = append(errs, allocator.TeamValidationError{
				EmergencyID:   team.Emergency.ID,
				CriterionName: c.Name(),
				Description:   "team has no lead",
			})
		}
	}
	return errs
}

func (c *TeamLeadCriterion) PromoteWeight() float64 {
	return 0
}

func (c *TeamLeadCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}

func needsLead(team *allocator.Team) bool {
	return allocator.NeedsLead(team.Emergency.Severity) && !team.HasLead()
}
