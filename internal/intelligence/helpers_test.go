package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/llm"
	"github.com/alexanderramin/triage/internal/scoring"
)

type mockLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func draftJSON(d ReportDraft) string {
	data, _ := json.Marshal(d)
	return string(data)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// sampleBoard is a small board in display order: one critical, one healthy
// and one finished project.
func sampleBoard() *app.BoardResponse {
	return &app.BoardResponse{
		Summary: app.BoardSummary{
			GeneratedAt:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			CountsTotal:    3,
			CountsActive:   2,
			CountsFinal:    1,
			CountsGood:     1,
			CountsCritical: 1,
		},
		Projects: []app.ProjectBoardView{
			{
				ProjectID:   "p-erp",
				ShortID:     "ERP01",
				Title:       "ERP Migration",
				Client:      "Acme",
				StatusName:  "Desenvolvimento",
				Priority:    domain.PriorityUrgent,
				Progress:    20,
				Deadline:    strPtr("2025-03-05"),
				DaysLeft:    intPtr(-5),
				Criticality: 100,
				Band:        domain.BandHigh,
				Health:      domain.HealthCritical,
				Issues:      []string{"Projeto atrasado (5 dias)", "2 tarefas bloqueadas"},
				Factors: []app.CriticalityFactor{
					{Code: scoring.FactorDeadlinePressure, Points: 50, Message: "overdue by 5 days"},
				},
				Tasks: app.TaskCounts{Total: 4, Pending: 3, Blocked: 2},
			},
			{
				ProjectID:   "p-site",
				Title:       "Website",
				StatusName:  "MVP",
				Priority:    domain.PriorityLow,
				Progress:    60,
				Criticality: 45,
				Band:        domain.BandMedium,
				Health:      domain.HealthGood,
				Issues:      []string{},
			},
			{
				ProjectID:  "p-intra",
				ShortID:    "INT02",
				Title:      "Intranet",
				StatusName: "Concluído",
				IsFinal:    true,
				Progress:   100,
				Band:       domain.BandLow,
				Health:     domain.HealthGood,
				Issues:     []string{},
			},
		},
	}
}
