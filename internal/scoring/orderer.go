package scoring

import (
	"sort"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

// RankedProject pairs a project with the values its ordering depends on.
type RankedProject struct {
	Project     *domain.Project
	Status      *domain.ProjectStatus
	IsFinal     bool
	Criticality CriticalityResult
}

// StatusName returns the resolved status name, or "" when unresolved.
func (r RankedProject) StatusName() string {
	if r.Status == nil {
		return ""
	}
	return r.Status.Name
}

type OrderInput struct {
	Now            time.Time
	Projects       []*domain.Project
	TasksByProject map[string][]*domain.Task
	Statuses       map[string]*domain.ProjectStatus
	Weights        *Weights
}

// GroupTasksByProject indexes tasks by project ID in one pass.
func GroupTasksByProject(tasks []*domain.Task) map[string][]*domain.Task {
	grouped := make(map[string][]*domain.Task)
	for _, t := range tasks {
		grouped[t.ProjectID] = append(grouped[t.ProjectID], t)
	}
	return grouped
}

// IndexStatuses indexes statuses by ID.
func IndexStatuses(statuses []*domain.ProjectStatus) map[string]*domain.ProjectStatus {
	index := make(map[string]*domain.ProjectStatus, len(statuses))
	for _, s := range statuses {
		index[s.ID] = s
	}
	return index
}

// OrderProjects scores every project once and returns them in display order.
func OrderProjects(input OrderInput) []RankedProject {
	ranked := make([]RankedProject, 0, len(input.Projects))
	for _, p := range input.Projects {
		status := input.Statuses[p.StatusID]
		isFinal := domain.IsFinalStatus(status)
		ranked = append(ranked, RankedProject{
			Project: p,
			Status:  status,
			IsFinal: isFinal,
			Criticality: ComputeCriticality(CriticalityInput{
				Now:     input.Now,
				Project: p,
				Status:  status,
				Tasks:   input.TasksByProject[p.ID],
				IsFinal: isFinal,
				Weights: input.Weights,
			}),
		})
	}
	CanonicalSort(ranked)
	return ranked
}

// CanonicalSort orders ranked projects with a single composite comparator:
// 1. Non-final before final
// 2. Non-final: criticality score descending, then title ascending
// 3. Final: status name ascending, then title ascending
func CanonicalSort(ranked []RankedProject) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.IsFinal != b.IsFinal {
			return !a.IsFinal
		}

		if !a.IsFinal {
			if a.Criticality.Score != b.Criticality.Score {
				return a.Criticality.Score > b.Criticality.Score
			}
			return a.Project.Title < b.Project.Title
		}

		if a.StatusName() != b.StatusName() {
			return a.StatusName() < b.StatusName()
		}
		return a.Project.Title < b.Project.Title
	})
}
