package allocator

// Criterion defines the interface for deployment criteria
// Criteria influence both which volunteers are placed first and which team they join
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// PromoteCandidate adjusts the priority ranking of a volunteer
	// Returns a score between -1.0 and 1.0 that is multiplied by PromoteWeight
	// Return 0 if this criterion doesn't affect ranking
	PromoteCandidate(state *PlanState, candidate *Candidate) float64

	// IsTeamValid is a veto: if ANY criterion returns false the candidate cannot join the team
	IsTeamValid(state *PlanState, candidate *Candidate, team *Team) bool

	// CalculateTeamAffinity scores how well a team matches a candidate
	// Returns a score between 0.0 and 1.0 that is multiplied by AffinityWeight
	CalculateTeamAffinity(state *PlanState, candidate *Candidate, team *Team) float64

	// ValidatePlan checks the finished plan against this criterion
	ValidatePlan(state *PlanState) []TeamValidationError

	PromoteWeight() float64
	AffinityWeight() float64
}

// IsTeamValidForCandidate checks every criterion's veto
func IsTeamValidForCandidate(state *PlanState, candidate *Candidate, team *Team, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c.IsTeamValid(state, candidate, team) {
			return false
		}
	}
	return true
}

// CalculateTeamAffinity sums the weighted affinity of every criterion
func CalculateTeamAffinity(state *PlanState, candidate *Candidate, team *Team, criteria []Criterion) float64 {
	var total float64
	for _, c := range criteria {
		total += c.CalculateTeamAffinity(state, candidate, team) * c.AffinityWeight()
	}
	return total
}

// calculateCandidateRankingScore orders candidates: most experienced first, then any criterion promotion
func calculateCandidateRankingScore(state *PlanState, candidate *Candidate, criteria []Criterion) float64 {
	score := float64(experienceRank[candidate.Volunteer.ExperienceLevel])
	for _, c := range criteria {
		score += c.PromoteCandidate(state, candidate) * c.PromoteWeight()
	}
	return score
}
