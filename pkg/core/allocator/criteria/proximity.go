package criteria

import (
	"github.com/jakechorley/connect-care/pkg/core/allocator"
)

// ProximityCriterion keeps volunteers close to the emergency they are sent to.
//
// Validity:
//   - Returns false if either side has no coordinates
//   - Returns false if the volunteer is further than radiusKm away
//
// Affinity:
//   - Falls linearly from 1.0 at the emergency to 0.5 at the edge of the radius
//
// Promotion:
//   - Volunteers with their own transportation are placed earlier
type ProximityCriterion struct {
	radiusKm       float64
	promoteWeight  float64
	affinityWeight float64
}

// NewProximityCriterion creates a new ProximityCriterion with the given radius and weights
func NewProximityCriterion(radiusKm, promoteWeight, affinityWeight float64) *ProximityCriterion {
	return &ProximityCriterion{
		radiusKm:       radiusKm,
		promoteWeight:  promoteWeight,
		affinityWeight: affinityWeight,
	}
}

func (c *ProximityCriterion) Name() string {
	return "Proximity"
}

func (c *ProximityCriterion) PromoteCandidate(state *allocator.PlanState, candidate *allocator.Candidate) float64 {
	if candidate.Volunteer.Transportation {
		return 1
	}
	return 0
}

func (c *ProximityCriterion) IsTeamValid(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) bool {
	d, ok := candidate.DistanceTo(team)
	return ok && d <= c.radiusKm
}

func (c *ProximityCriterion) CalculateTeamAffinity(state *allocator.PlanState, candidate *allocator.Candidate, team *allocator.Team) float64 {
	d, ok := candidate.DistanceTo(team)
	if !ok || c.radiusKm <= 0 {
		return 0
	}
	return max(1-0.5*d/c.radiusKm, 0)
}

func (c *ProximityCriterion) ValidatePlan(state *allocator.PlanState) []allocator.TeamValidationError {
	return nil
}

func (c *ProximityCriterion) PromoteWeight() float64 {
	return c.promoteWeight
}

func (c *ProximityCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
