package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// priorityAliases maps accepted spellings (English and Portuguese) to the
// canonical priority.
var priorityAliases = map[string]Priority{
	"low":     PriorityLow,
	"baixa":   PriorityLow,
	"medium":  PriorityMedium,
	"media":   PriorityMedium,
	"média":   PriorityMedium,
	"high":    PriorityHigh,
	"alta":    PriorityHigh,
	"urgent":  PriorityUrgent,
	"urgente": PriorityUrgent,
}

// ParsePriority normalizes a user-supplied priority. Empty input yields an
// empty Priority, which scoring treats as medium.
func ParsePriority(s string) (Priority, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", nil
	}
	if p, ok := priorityAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q (use low, medium, high or urgent)", s)
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

// ParseTaskStatus normalizes a task status, accepting "in-progress" as an
// alias of in_progress.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending":
		return TaskPending, nil
	case "in_progress", "in-progress":
		return TaskInProgress, nil
	case "completed", "done":
		return TaskCompleted, nil
	case "blocked":
		return TaskBlocked, nil
	}
	return "", fmt.Errorf("unknown task status %q (use pending, in_progress, completed or blocked)", s)
}

// StatusPhase is the stable machine key of a project status. Scoring keys
// its status weight table by phase rather than by display name.
type StatusPhase string

const (
	PhaseCustom      StatusPhase = ""
	PhaseEnvironment StatusPhase = "ambiente"
	PhasePOC         StatusPhase = "poc"
	PhaseMVP         StatusPhase = "mvp"
	PhaseDevelopment StatusPhase = "desenvolvimento"
	PhaseProduction  StatusPhase = "producao"
	PhaseStaging     StatusPhase = "homologacao"
	PhaseTesting     StatusPhase = "testes"
)

// KnownPhases lists every non-custom phase in lifecycle order.
var KnownPhases = []StatusPhase{
	PhaseEnvironment,
	PhasePOC,
	PhaseMVP,
	PhaseDevelopment,
	PhaseTesting,
	PhaseStaging,
	PhaseProduction,
}

// ParsePhase validates an explicit phase key. Empty input means custom.
func ParsePhase(s string) (StatusPhase, error) {
	key := StatusPhase(foldName(s))
	if key == PhaseCustom {
		return PhaseCustom, nil
	}
	for _, p := range KnownPhases {
		if p == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

type HealthLevel string

const (
	HealthGood     HealthLevel = "good"
	HealthWarning  HealthLevel = "warning"
	HealthCritical HealthLevel = "critical"
)

type CriticalityBand string

const (
	BandLow    CriticalityBand = "low"
	BandMedium CriticalityBand = "medium"
	BandHigh   CriticalityBand = "high"
)

type ReportSource string

const (
	ReportFromLLM           ReportSource = "llm"
	ReportFromDeterministic ReportSource = "deterministic"
)
