package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleView() app.ProjectBoardView {
	return app.ProjectBoardView{
		ProjectID:   "0b6a52c4-1111-2222-3333-444455556666",
		ShortID:     "POR01",
		Title:       "Portal do Cliente",
		Client:      "ACME",
		StatusName:  "Desenvolvimento",
		Priority:    domain.PriorityUrgent,
		Progress:    40,
		Deadline:    strPtr("2025-03-08"),
		DaysLeft:    intPtr(-2),
		Criticality: 100,
		Band:        domain.BandHigh,
		Factors: []app.CriticalityFactor{
			{Code: scoring.FactorDeadlinePressure, Points: 50, Message: "Overdue by 2 days"},
		},
		Health: domain.HealthCritical,
		Issues: []string{"Projeto atrasado (2 dias)"},
		Tasks:  app.TaskCounts{Total: 3, Pending: 2, Completed: 1, Blocked: 1, Overdue: 1},
	}
}

func TestFormatBoard(t *testing.T) {
	final := app.ProjectBoardView{ProjectID: "abcdef0123456789", Title: "Legacy", StatusName: "Concluído", IsFinal: true, Health: domain.HealthGood}
	resp := &app.BoardResponse{
		Summary: app.BoardSummary{
			GeneratedAt:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			CountsTotal:    2,
			CountsActive:   1,
			CountsFinal:    1,
			CountsCritical: 1,
		},
		Projects: []app.ProjectBoardView{sampleView(), final},
		Warnings: []string{"project X references unknown status"},
	}

	out := FormatBoard(resp)
	assert.Contains(t, out, "BOARD")
	assert.Contains(t, out, "2025-03-10")
	assert.Contains(t, out, "1 active · 1 final")
	assert.Contains(t, out, "POR01")
	assert.Contains(t, out, "100 HIGH")
	assert.Contains(t, out, "CRÍTICO")
	assert.Contains(t, out, "2d ago")
	assert.Contains(t, out, "1/3 1 blocked 1 late")
	assert.Contains(t, out, "abcdef01", "projects without short ID show a truncated ID")
	assert.Contains(t, out, "final")
	assert.Contains(t, out, "! project X references unknown status")
}

func TestFormatBoard_Empty(t *testing.T) {
	out := FormatBoard(&app.BoardResponse{})
	assert.Contains(t, out, "No projects to show.")
}

func TestFormatProjectDetail(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{
		{ID: "t-1", Title: "API de pedidos", Status: domain.TaskBlocked, Deadline: &deadline},
		{ID: "t-2", Title: "Kickoff", Status: domain.TaskCompleted, Assignee: "ana"},
	}
	out := FormatProjectDetail(sampleView(), tasks)

	assert.Contains(t, out, "Client:    ACME")
	assert.Contains(t, out, "2025-03-08 (2d ago)")
	assert.Contains(t, out, "DEADLINE_PRESSURE")
	assert.Contains(t, out, "+50")
	assert.Contains(t, out, "• Projeto atrasado (2 dias)")
	assert.Contains(t, out, "API de pedidos")
	assert.Contains(t, out, "2025-03-01")
	assert.Contains(t, out, "ana")
}

func TestFormatProjectDetail_NoTasks(t *testing.T) {
	v := sampleView()
	v.Factors = nil
	v.Issues = nil
	out := FormatProjectDetail(v, nil)
	assert.Contains(t, out, "No tasks.")
	assert.NotContains(t, out, "CRITICALITY FACTORS")
}
