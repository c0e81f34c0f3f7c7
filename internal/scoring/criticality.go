package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

type FactorCode string

const (
	FactorStatus           FactorCode = "STATUS_WEIGHT"
	FactorPriority         FactorCode = "PRIORITY_WEIGHT"
	FactorDeadlinePressure FactorCode = "DEADLINE_PRESSURE"
	FactorScheduleDrift    FactorCode = "SCHEDULE_DRIFT"
	FactorPendingLoad      FactorCode = "PENDING_TASK_LOAD"
)

// Factor is one non-zero contribution to a criticality score.
type Factor struct {
	Code    FactorCode
	Points  int
	Message string
}

type CriticalityInput struct {
	Now     time.Time
	Project *domain.Project
	// Status is the resolved status; nil when the reference does not resolve.
	Status *domain.ProjectStatus
	// Tasks are the project's tasks. Nil is treated as empty.
	Tasks   []*domain.Task
	IsFinal bool
	// Weights nil means DefaultWeights.
	Weights *Weights
}

type CriticalityResult struct {
	Score   int
	Factors []Factor
}

// ComputeCriticality scores a project's urgency in [0,100]. Contributions
// are summed, then capped. Final projects short-circuit to zero.
func ComputeCriticality(input CriticalityInput) CriticalityResult {
	if input.IsFinal {
		return CriticalityResult{}
	}

	w := DefaultWeights()
	if input.Weights != nil {
		w = *input.Weights
	}

	var result CriticalityResult
	factors := []func(CriticalityInput, Weights) *Factor{
		scoreStatus,
		scorePriority,
		scoreDeadlinePressure,
		scoreScheduleDrift,
		scorePendingLoad,
	}
	total := 0
	for _, f := range factors {
		if factor := f(input, w); factor != nil {
			total += factor.Points
			result.Factors = append(result.Factors, *factor)
		}
	}

	result.Score = min(max(total, 0), maxScore)
	return result
}

// Band buckets a score for display.
func Band(score int) domain.CriticalityBand {
	switch {
	case score >= 70:
		return domain.BandHigh
	case score >= 40:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}

func scoreStatus(input CriticalityInput, w Weights) *Factor {
	points := w.statusWeight(input.Status)
	if points == 0 {
		return nil
	}
	name := "unresolved status"
	if input.Status != nil {
		name = input.Status.Name
	}
	return &Factor{
		Code:    FactorStatus,
		Points:  points,
		Message: fmt.Sprintf("Status %q", name),
	}
}

func scorePriority(input CriticalityInput, w Weights) *Factor {
	points := w.priorityWeight(input.Project.Priority)
	if points == 0 {
		return nil
	}
	label := string(input.Project.Priority)
	if label == "" {
		label = "unset"
	}
	return &Factor{
		Code:    FactorPriority,
		Points:  points,
		Message: fmt.Sprintf("Priority %s", label),
	}
}

func scoreDeadlinePressure(input CriticalityInput, _ Weights) *Factor {
	if input.Project.Deadline == nil {
		return nil
	}
	daysUntil := domain.DaysBetween(input.Now, *input.Project.Deadline)
	var points int
	switch {
	case daysUntil < 0:
		points = 50
	case daysUntil <= 3:
		points = 40
	case daysUntil <= 7:
		points = 30
	case daysUntil <= 14:
		points = 20
	default:
		points = 10
	}
	return &Factor{
		Code:    FactorDeadlinePressure,
		Points:  points,
		Message: formatDeadlineMessage(daysUntil),
	}
}

func scoreScheduleDrift(input CriticalityInput, _ Weights) *Factor {
	p := input.Project
	if p.StartDate == nil || p.Deadline == nil {
		return nil
	}
	totalDays := domain.DaysBetween(*p.StartDate, *p.Deadline)
	daysElapsed := domain.DaysBetween(*p.StartDate, input.Now)
	if totalDays <= 0 || daysElapsed <= 0 {
		return nil
	}

	expected := math.Min(100, float64(daysElapsed)/float64(totalDays)*100)
	actual := float64(p.Progress)

	var points int
	switch {
	case actual < expected-20:
		points = 15
	case actual < expected-10:
		points = 10
	default:
		return nil
	}
	return &Factor{
		Code:    FactorScheduleDrift,
		Points:  points,
		Message: fmt.Sprintf("Progress %d%% vs %.0f%% expected", p.Progress, expected),
	}
}

func scorePendingLoad(input CriticalityInput, _ Weights) *Factor {
	if len(input.Tasks) == 0 {
		return nil
	}
	pending := 0
	for _, t := range input.Tasks {
		if t.IsPending() {
			pending++
		}
	}
	ratio := float64(pending) / float64(len(input.Tasks))

	var points int
	switch {
	case ratio > 0.75:
		points = 10
	case ratio > 0.5:
		points = 5
	default:
		return nil
	}
	return &Factor{
		Code:    FactorPendingLoad,
		Points:  points,
		Message: fmt.Sprintf("%d of %d tasks pending", pending, len(input.Tasks)),
	}
}

func formatDeadlineMessage(daysUntil int) string {
	switch {
	case daysUntil < 0:
		return fmt.Sprintf("Overdue by %d days", -daysUntil)
	case daysUntil == 0:
		return "Due today"
	case daysUntil == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", daysUntil)
	}
}
