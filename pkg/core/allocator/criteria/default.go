package criteria

import "github.com/jakechorley/connect-care/pkg/core/allocator"

// Default returns the criteria used for deployment plans
func Default(radiusKm float64) []allocator.Criterion {
	return []allocator.Criterion{
		NewProximityCriterion(radiusKm, 0.5, 1),
		NewSkillMatchCriterion(2),
		NewTeamLeadCriterion(3),
	}
}
