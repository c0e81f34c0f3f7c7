package app

import (
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/scoring"
)

type BoardRequest struct {
	Now *time.Time
	// ProjectScope restricts the board to these projects, by ID or short ID.
	ProjectScope []string
	IncludeFinal bool
	Weights      *scoring.Weights
}

func NewBoardRequest() BoardRequest {
	return BoardRequest{IncludeFinal: true}
}

type CriticalityFactor struct {
	Code    scoring.FactorCode
	Points  int
	Message string
}

type TaskCounts struct {
	Total     int
	Pending   int
	Completed int
	Blocked   int
	Overdue   int
}

// ProjectBoardView is one row of the board. Criticality and health are
// computed independently and reported side by side.
type ProjectBoardView struct {
	ProjectID   string
	ShortID     string
	Title       string
	Client      string
	StatusName  string
	IsFinal     bool
	Priority    domain.Priority
	Progress    int
	StartDate   *string
	Deadline    *string
	DaysLeft    *int
	Criticality int
	Band        domain.CriticalityBand
	Factors     []CriticalityFactor
	Health      domain.HealthLevel
	Issues      []string
	Tasks       TaskCounts
}

type BoardSummary struct {
	GeneratedAt    time.Time
	CountsTotal    int
	CountsActive   int
	CountsFinal    int
	CountsGood     int
	CountsWarning  int
	CountsCritical int
}

type BoardResponse struct {
	Summary  BoardSummary
	Projects []ProjectBoardView
	Warnings []string
}
