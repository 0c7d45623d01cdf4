package criteria

import (
	"fmt"
	"slices"

	"github.com/jakechorley/connect-care/pkg/core/allocator"
	"github.com/jakechorley/connect-care/pkg/core/model"
)

var skillsByCategory = map[model.EmergencyCategory][]model.Skill{
	model.CategoryNaturalDisaster:  {model.SkillSearchRescue, model.SkillFirstAid, model.SkillLogistics},
	model.CategoryMedicalEmergency: {model.SkillMedical, model.SkillFirstAid},
	model.CategoryFire:             {model.SkillFirstAid, model.SkillSearchRescue},
	model.CategoryAccident:         {model.SkillFirstAid, model.SkillMedical, model.SkillDriving},
	model.CategoryViolence:         {model.SkillCounseling, model.SkillFirstAid},
	model.CategoryInfrastructure:   {model.SkillConstruction, model.SkillLogistics},
	model.CategoryOther:            {model.SkillFirstAid, model.SkillCommunication},
}

// RequiredSkills returns the skills a team responding to this category should cover
func RequiredSkills(category model.EmergencyCategory) []model.Skill {
	if s, ok := skillsByCategory[category]; ok {
		return slices.Clone(s)
	}
	return slices.Clone(skillsByCategory[model.CategoryOther])
}

// SkillMatchCriterion fills gaps in a team's skills.
//
// Affinity:
//   - Fraction of the category's required skills the volunteer brings that the team lacks
//
// Validation:
//   - A staffed team must cover at least one required skill
type SkillMatchCriterion struct {
	affinityWeight float64
}

// NewSkillMatchCriterion creates a new SkillMatchCriterion with the given weight
func NewSkillMatchCriterion(affinityWeight float64) *SkillMatchCriterion {
	return &SkillMatchCriterion{affinityWeight: affinityWeight}
}

func (c *SkillMatchCriterion) Name() string {
	return "SkillMatch"
}

func (c *SkillMatchCriterion) PromoteCandidate(state *allocator.PlanState, candidate *allocator.Candidate) float64 {
	return 0
}

func (c *SkillMatchCriterion) IsTeamValid(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) bool {
	return true
}

func (c *SkillMatchCriterion) CalculateTeamAffinity(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) float64 {
	required := RequiredSkills(team.Emergency.Category)
	have := team.Skills()

	var gained int
	for _, s := range required {
		if !slices.Contains(have, s) && slices.Contains(candidate.Volunteer.Skills, s) {
			gained++
		}
	}
	return float64(gained) / float64(len(required))
}

func (c *SkillMatchCriterion) ValidatePlan(state *allocator.PlanState) []allocator.TeamValidationError {
	var errs []allocator.TeamValidationError
	for _, team := range state.Teams {
		if len(team.Members) == 0 {
			continue
		}
		required := RequiredSkills(team.Emergency.Category)
		have := team.Skills()
		if !slices.ContainsFunc(required, func(s model.Skill) bool { return slices.Contains(have, s) }) {
			errs = append(errs, allocator.TeamValidationError{
				EmergencyID:   team.Emergency.ID,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("team covers none of the required skills %v", required),
			})
		}
	}
	return errs
}

func (c *SkillMatchCriterion) PromoteWeight() float64 {
	return 0
}

func (c *SkillMatchCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
