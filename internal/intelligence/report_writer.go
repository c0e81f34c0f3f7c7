package intelligence

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/llm"
)

// ReportWriter turns a computed board into a client-facing narrative.
type ReportWriter interface {
	// Write never fails because of the LLM: any LLM error or invalid output
	// yields the deterministic report instead.
	Write(ctx context.Context, trace PortfolioTrace) (*WrittenReport, error)
}

type reportWriter struct {
	client llm.LLMClient
}

// NewReportWriter creates a ReportWriter. A nil client always writes the
// deterministic report.
func NewReportWriter(client llm.LLMClient) ReportWriter {
	return &reportWriter{client: client}
}

func (w *reportWriter) Write(ctx context.Context, trace PortfolioTrace) (*WrittenReport, error) {
	if w.client == nil {
		return fallback(trace, llm.ErrDisabled), nil
	}

	traceJSON, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fallback(trace, err), nil
	}

	task, system := llm.TaskReport, reportSystemPrompt
	if trace.Scope == ScopeProject {
		task, system = llm.TaskProjectReport, projectReportSystemPrompt
	}

	resp, err := w.client.Generate(ctx, llm.GenerateRequest{
		Task:           task,
		SystemPrompt:   system,
		UserPrompt:     "Here is the portfolio trace:\n\n" + string(traceJSON),
		ResponseSchema: reportResponseSchema,
	})
	if err != nil {
		return fallback(trace, err), nil
	}

	draft, err := llm.ExtractJSON[ReportDraft](resp.Text, validateDraft)
	if err != nil {
		return fallback(trace, err), nil
	}

	// Reject narratives that cite projects outside the trace.
	if err := ValidateEvidenceBindings(draft, trace.TraceKeys()); err != nil {
		return fallback(trace, err), nil
	}

	if draft.Highlights == nil {
		draft.Highlights = []ReportItem{}
	}
	if draft.Risks == nil {
		draft.Risks = []ReportItem{}
	}
	return &WrittenReport{Draft: draft, Source: domain.ReportFromLLM}, nil
}

func fallback(trace PortfolioTrace, cause error) *WrittenReport {
	return &WrittenReport{
		Draft:          DeterministicReport(trace),
		Source:         domain.ReportFromDeterministic,
		FallbackReason: cause.Error(),
	}
}
