package scoring

import "github.com/alexanderramin/triage/internal/domain"

const maxScore = 100

// Weights holds the lookup tables behind the status and priority
// contributions. Missing keys fall back to the defaults.
type Weights struct {
	Status          map[domain.StatusPhase]int
	DefaultStatus   int
	Priority        map[domain.Priority]int
	DefaultPriority int
}

// DefaultWeights returns the stock weight tables.
func DefaultWeights() Weights {
	return Weights{
		Status: map[domain.StatusPhase]int{
			domain.PhaseEnvironment: 10,
			domain.PhasePOC:         20,
			domain.PhaseMVP:         30,
			domain.PhaseDevelopment: 40,
			domain.PhaseProduction:  20,
			domain.PhaseStaging:     35,
			domain.PhaseTesting:     25,
		},
		DefaultStatus: 20,
		Priority: map[domain.Priority]int{
			domain.PriorityLow:    5,
			domain.PriorityMedium: 15,
			domain.PriorityHigh:   25,
			domain.PriorityUrgent: 40,
		},
		DefaultPriority: 15,
	}
}

// WithOverrides returns a copy of w with the given entries replaced.
func (w Weights) WithOverrides(status map[domain.StatusPhase]int, priority map[domain.Priority]int) Weights {
	out := Weights{
		Status:          make(map[domain.StatusPhase]int, len(w.Status)+len(status)),
		DefaultStatus:   w.DefaultStatus,
		Priority:        make(map[domain.Priority]int, len(w.Priority)+len(priority)),
		DefaultPriority: w.DefaultPriority,
	}
	for k, v := range w.Status {
		out.Status[k] = v
	}
	for k, v := range status {
		out.Status[k] = v
	}
	for k, v := range w.Priority {
		out.Priority[k] = v
	}
	for k, v := range priority {
		out.Priority[k] = v
	}
	return out
}

func (w Weights) statusWeight(s *domain.ProjectStatus) int {
	phase := s.EffectivePhase()
	if phase == domain.PhaseCustom {
		return w.DefaultStatus
	}
	if v, ok := w.Status[phase]; ok {
		return v
	}
	return w.DefaultStatus
}

func (w Weights) priorityWeight(p domain.Priority) int {
	if v, ok := w.Priority[p]; ok {
		return v
	}
	return w.DefaultPriority
}
