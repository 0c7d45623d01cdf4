package allocator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// Allocator builds a deployment plan with configurable criteria
type Allocator struct {
	criteria []Criterion
	state    *PlanState
}

// PlanConfig contains the configuration for a deployment plan
type PlanConfig struct {
	// Criteria to apply during allocation (with their weights)
	Criteria []Criterion

	// Emergencies to staff. Only active and responding ones are used.
	Emergencies []model.Emergency

	// Volunteers to draw from. Only available ones are used.
	Volunteers []model.Volunteer
}

// PlanOutcome represents the result of a deployment plan
type PlanOutcome struct {
	// Teams in staffing order: most severe emergencies first
	Teams []*Team

	// Unassigned contains available volunteers no team could take
	Unassigned []model.Volunteer

	// ValidationErrors contains any problems found in the final plan
	ValidationErrors []TeamValidationError

	// Success indicates every team is fully staffed and valid
	Success bool
}

// InitPlan builds the starting state from config
func InitPlan(config PlanConfig) (*Allocator, error) {
	state := &PlanState{}
	seenEmergencies := make(map[string]bool)
	seenVolunteers := make(map[string]bool)

	for _, e := range config.Emergencies {
		if e.Status != model.StatusActive && e.Status != model.StatusResponding {
			continue
		}
		if seenEmergencies[e.ID] {
			return nil, fmt.Errorf("duplicate emergency id %s", e.ID)
		}
		seenEmergencies[e.ID] = true
		state.Teams = append(state.Teams, &Team{Emergency: e, Size: TeamSize(e.Severity)})
	}

	for _, v := range config.Volunteers {
		if v.Availability != model.AvailabilityAvailable {
			continue
		}
		if seenVolunteers[v.ID] {
			return nil, fmt.Errorf("duplicate volunteer id %s", v.ID)
		}
		seenVolunteers[v.ID] = true
		state.Candidates = append(state.Candidates, &Candidate{Volunteer: v})
	}

	slices.SortStableFunc(state.Teams, func(a, b *Team) int {
		if c := cmp.Compare(severityRank[b.Emergency.Severity], severityRank[a.Emergency.Severity]); c != 0 {
			return c
		}
		return cmp.Compare(a.Emergency.ID, b.Emergency.ID)
	})

	allocator := &Allocator{criteria: config.Criteria, state: state}
	allocator.rankCandidates()
	return allocator, nil
}

// Plan runs the allocation loop: each candidate in rank order joins the
// valid team with the highest affinity, if any
func Plan(config PlanConfig) (*PlanOutcome, error) {
	allocator, err := InitPlan(config)
	if err != nil {
		return nil, err
	}

	for _, candidate := range allocator.state.Candidates {
		if allocator.allTeamsFull() {
			break
		}

		team := allocator.findBestTeam(candidate)
		if team == nil {
			continue
		}
		allocator.assign(candidate, team)
	}

	return allocator.buildOutcome(), nil
}

func (a *Allocator) rankCandidates() {
	scores := make(map[*Candidate]float64, len(a.state.Candidates))
	for _, c := range a.state.Candidates {
		scores[c] = calculateCandidateRankingScore(a.state, c, a.criteria)
	}
	slices.SortStableFunc(a.state.Candidates, func(x, y *Candidate) int {
		if c := cmp.Compare(scores[y], scores[x]); c != 0 {
			return c
		}
		return cmp.Compare(x.Volunteer.ID, y.Volunteer.ID)
	})
}

// findBestTeam finds the valid team with highest affinity for the given candidate.
// A team passing every veto is eligible even at zero affinity; ties keep staffing order.
func (a *Allocator) findBestTeam(candidate *Candidate) *Team {
	var bestTeam *Team
	var bestAffinity float64

	for _, team := range a.state.Teams {
		if team.IsFull() {
			continue
		}
		if !IsTeamValidForCandidate(a.state, candidate, team, a.criteria) {
			continue
		}

		affinity := CalculateTeamAffinity(a.state, candidate, team, a.criteria)
		if bestTeam == nil || affinity > bestAffinity {
			bestAffinity = affinity
			bestTeam = team
		}
	}

	return bestTeam
}

func (a *Allocator) assign(candidate *Candidate, team *Team) {
	distance, _ := candidate.DistanceTo(team)
	team.Members = append(team.Members, Assignment{
		Volunteer:  candidate.Volunteer,
		DistanceKm: distance,
		Lead:       NeedsLead(team.Emergency.Severity) && !team.HasLead() && CanLead(candidate.Volunteer),
	})
	candidate.Assigned = true
}

func (a *Allocator) allTeamsFull() bool {
	for _, team := range a.state.Teams {
		if !team.IsFull() {
			return false
		}
	}
	return true
}

func (a *Allocator) buildOutcome() *PlanOutcome {
	outcome := &PlanOutcome{
		Teams:            a.state.Teams,
		Unassigned:       []model.Volunteer{},
		ValidationErrors: []TeamValidationError{},
	}

	for _, c := range a.state.Candidates {
		if !c.Assigned {
			outcome.Unassigned = append(outcome.Unassigned, c.Volunteer)
		}
	}

	outcome.ValidationErrors = ValidatePlanState(a.state, a.criteria)
	outcome.Success = len(outcome.ValidationErrors) == 0
	return outcome
}

// ValidatePlanState reports understaffed teams and every criterion's validation errors
func ValidatePlanState(state *PlanState, criteria []Criterion) []TeamValidationError {
	errs := []TeamValidationError{}
	for _, team := range state.Teams {
		if !team.IsFull() {
			errs = append(errs, TeamValidationError{
				EmergencyID:   team.Emergency.ID,
				CriterionName: "TeamSize",
				Description:   fmt.Sprintf("team has %d of %d volunteers", len(team.Members), team.Size),
			})
		}
	}
	for _, c := range criteria {
		errs = append(errs, c.ValidatePlan(state)...)
	}
	return errs
}
