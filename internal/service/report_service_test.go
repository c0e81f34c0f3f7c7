package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/intelligence"
	"github.com/alexanderramin/triage/internal/llm"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// cannedLLM answers every prompt with the same text.
type cannedLLM struct {
	text  string
	err   error
	calls int
}

func (c *cannedLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.text, Model: "canned"}, nil
}

func (c *cannedLLM) Available(context.Context) bool { return c.err == nil }

func (f boardFixture) reportService(client llm.LLMClient, observers ...UseCaseObserver) ReportService {
	r := f.repos
	return NewReportService(r.boardService(), r.projects, r.reports, intelligence.NewReportWriter(client), observers...)
}

func TestReport_DisabledLLMFallsBackAndPersists(t *testing.T) {
	f := seedBoard(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := f.reportService(nil, obs)

	resp, err := svc.Generate(ctx, app.ReportRequest{Now: &boardNow})
	require.NoError(t, err)

	assert.True(t, resp.Fallback)
	assert.Equal(t, llm.ErrDisabled.Error(), resp.FallbackReason)
	rep := resp.Report
	assert.Equal(t, domain.ReportFromDeterministic, rep.Source)
	assert.Equal(t, "Relatório do portfólio 2025-03-10", rep.Title)
	assert.Empty(t, rep.ProjectID)
	assert.NotEmpty(t, rep.Summary)
	require.NotEmpty(t, rep.Risks)
	assert.Contains(t, rep.Risks[0], "POR01: ")

	stored, err := svc.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Summary, stored.Summary)
	assert.Equal(t, rep.Risks, stored.Risks)

	assert.Equal(t, "report", obs.last().Name)
	assert.Equal(t, "deterministic", obs.last().Fields["source"])
}

func TestReport_LLMNarrativeIsUsed(t *testing.T) {
	f := seedBoard(t)
	client := &cannedLLM{text: `{
		"summary": "Portal exige atenção imediata.",
		"highlights": [{"project_ref": "INT01", "text": "Intranet estável."}],
		"risks": [{"project_ref": "POR01", "text": "Prazo vencido."}]
	}`}
	svc := f.reportService(client)

	resp, err := svc.Generate(context.Background(), app.ReportRequest{Now: &boardNow, Title: "Semanal"})
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.False(t, resp.Fallback)
	assert.Empty(t, resp.FallbackReason)
	assert.Equal(t, domain.ReportFromLLM, resp.Report.Source)
	assert.Equal(t, "Semanal", resp.Report.Title)
	assert.Equal(t, "Portal exige atenção imediata.", resp.Report.Summary)
	assert.Equal(t, []string{"INT01: Intranet estável."}, resp.Report.Highlights)
	assert.Equal(t, []string{"POR01: Prazo vencido."}, resp.Report.Risks)
}

func TestReport_LLMCitingUnknownProjectFallsBack(t *testing.T) {
	f := seedBoard(t)
	client := &cannedLLM{text: `{"summary": "ok", "highlights": [], "risks": [{"project_ref": "GHOST", "text": "inventado"}]}`}
	svc := f.reportService(client)

	resp, err := svc.Generate(context.Background(), app.ReportRequest{Now: &boardNow})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.FallbackReason, "GHOST")
}

func TestReport_LLMErrorFallsBack(t *testing.T) {
	f := seedBoard(t)
	svc := f.reportService(&cannedLLM{err: llm.ErrUnavailable})

	resp, err := svc.Generate(context.Background(), app.ReportRequest{Now: &boardNow})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, llm.ErrUnavailable.Error(), resp.FallbackReason)
}

func TestReport_ProjectScope(t *testing.T) {
	f := seedBoard(t)
	ctx := context.Background()
	svc := f.reportService(nil)

	resp, err := svc.Generate(ctx, app.ReportRequest{Now: &boardNow, ProjectRef: "int01"})
	require.NoError(t, err)
	assert.Equal(t, f.intranet.ID, resp.Report.ProjectID)
	assert.Equal(t, "Relatório INT01 2025-03-10", resp.Report.Title)

	_, err = svc.Generate(ctx, app.ReportRequest{Now: &boardNow})
	require.NoError(t, err)

	scoped, err := svc.List(ctx, "INT01")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, resp.Report.ID, scoped[0].ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReport_UnknownProject(t *testing.T) {
	f := seedBoard(t)
	svc := f.reportService(nil)

	_, err := svc.Generate(context.Background(), app.ReportRequest{ProjectRef: "NOPE1"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.List(context.Background(), "NOPE1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReport_LogObserverTagsProject(t *testing.T) {
	f := seedBoard(t)
	core, logs := observer.New(zap.InfoLevel)
	svc := f.reportService(nil, NewLogUseCaseObserver(zap.New(core)))

	_, err := svc.Generate(context.Background(), app.ReportRequest{Now: &boardNow, ProjectRef: "POR01"})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "service_use_case", entry.Message)
	ctxMap := entry.ContextMap()
	assert.Equal(t, "report", ctxMap["use_case"])
	assert.Equal(t, f.portal.ID, ctxMap["project_id"])
	assert.Equal(t, "POR01", ctxMap["short_id"])
	assert.Equal(t, string(domain.ReportFromDeterministic), ctxMap["source"])
}
