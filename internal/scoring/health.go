package scoring

import (
	"fmt"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

const (
	lowProgressThreshold = 30
	nearDeadlineDays     = 14
	maxWarningIssues     = 2
)

type HealthInput struct {
	Now     time.Time
	Project *domain.Project
	Status  *domain.ProjectStatus
	Tasks   []*domain.Task
}

type HealthResult struct {
	Level        domain.HealthLevel
	Issues       []string
	OverdueTasks int
	BlockedTasks int
	// DaysOverdue is positive only when the project itself is overdue.
	DaysOverdue      int
	ProjectOverdue   bool
	LowProgressAlert bool
}

// ClassifyHealth derives the three-tier health signal from task lateness,
// blocked tasks and progress against the deadline. It is independent of the
// criticality score.
func ClassifyHealth(input HealthInput) HealthResult {
	if domain.IsFinalStatus(input.Status) {
		return HealthResult{Level: domain.HealthGood, Issues: []string{}}
	}

	p := input.Project
	result := HealthResult{Issues: []string{}}

	for _, t := range input.Tasks {
		if t.IsOverdue(input.Now) {
			result.OverdueTasks++
		}
		if t.IsBlocked() {
			result.BlockedTasks++
		}
	}

	var daysUntil int
	if p.Deadline != nil {
		daysUntil = domain.DaysBetween(input.Now, *p.Deadline)
		if daysUntil < 0 {
			result.ProjectOverdue = true
			result.DaysOverdue = -daysUntil
		}
		result.LowProgressAlert = p.Progress < lowProgressThreshold && daysUntil <= nearDeadlineDays
	}

	if result.OverdueTasks > 0 {
		result.Issues = append(result.Issues, fmt.Sprintf("%d tarefas atrasadas", result.OverdueTasks))
	}
	if result.ProjectOverdue {
		result.Issues = append(result.Issues, fmt.Sprintf("Projeto atrasado (%d dias)", result.DaysOverdue))
	}
	if result.LowProgressAlert {
		result.Issues = append(result.Issues, fmt.Sprintf("Progresso baixo (%d%%) com prazo próximo", p.Progress))
	}
	if result.BlockedTasks > 0 {
		result.Issues = append(result.Issues, fmt.Sprintf("%d tarefas bloqueadas", result.BlockedTasks))
	}

	// An overdue project never lands in warning, even with a single issue.
	switch {
	case len(result.Issues) == 0:
		result.Level = domain.HealthGood
	case len(result.Issues) <= maxWarningIssues && !result.ProjectOverdue:
		result.Level = domain.HealthWarning
	default:
		result.Level = domain.HealthCritical
	}
	return result
}

// HealthPriority returns a sort priority (lower = worse health).
func HealthPriority(h domain.HealthLevel) int {
	switch h {
	case domain.HealthCritical:
		return 0
	case domain.HealthWarning:
		return 1
	default:
		return 2
	}
}
