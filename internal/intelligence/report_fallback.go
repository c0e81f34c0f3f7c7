package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
)

// DeterministicReport builds a report directly from trace data without the
// LLM. Used when the LLM is disabled, unavailable, or returns output that
// fails validation.
func DeterministicReport(trace PortfolioTrace) ReportDraft {
	draft := ReportDraft{
		Highlights: []ReportItem{},
		Risks:      []ReportItem{},
	}

	if trace.Scope == ScopeProject && len(trace.Projects) == 1 {
		draft.Summary = projectSummary(trace.Projects[0])
	} else {
		draft.Summary = portfolioSummary(trace)
	}

	for _, p := range trace.Projects {
		switch {
		case p.IsFinal:
			draft.Highlights = append(draft.Highlights, ReportItem{
				ProjectRef: p.Ref,
				Text:       fmt.Sprintf("%s concluído (%s).", p.Title, p.Status),
			})
		case p.Health == string(domain.HealthGood):
			draft.Highlights = append(draft.Highlights, ReportItem{
				ProjectRef: p.Ref,
				Text:       fmt.Sprintf("%s segue sem pendências críticas, com %d%% de progresso.", p.Title, p.Progress),
			})
		default:
			draft.Risks = append(draft.Risks, ReportItem{
				ProjectRef: p.Ref,
				Text:       fmt.Sprintf("%s (%s): %s.", p.Title, healthLabel(p.Health), strings.Join(p.Issues, "; ")),
			})
		}
	}
	return draft
}

func portfolioSummary(t PortfolioTrace) string {
	if t.Summary.Total == 0 {
		return "Nenhum projeto cadastrado no portfólio."
	}
	s := fmt.Sprintf("%d projetos ativos e %d finalizados. Saúde dos ativos: %d críticos, %d em atenção e %d saudáveis.",
		t.Summary.Active, t.Summary.Final, t.Summary.Critical, t.Summary.Warning, t.Summary.Good)
	if active := t.Active(); len(active) > 0 {
		top := active[0]
		s += fmt.Sprintf(" Maior criticidade: %s (%d/100).", top.Title, top.Criticality)
	}
	return s
}

func projectSummary(p ProjectTraceItem) string {
	if p.IsFinal {
		return fmt.Sprintf("%s está finalizado (%s).", p.Title, p.Status)
	}
	s := fmt.Sprintf("%s está com %d%% de progresso, criticidade %d/100 e saúde %s.",
		p.Title, p.Progress, p.Criticality, healthLabel(p.Health))
	if p.Deadline != nil {
		s += fmt.Sprintf(" Prazo: %s.", *p.Deadline)
	}
	return s
}

func healthLabel(h string) string {
	switch domain.HealthLevel(h) {
	case domain.HealthCritical:
		return "crítica"
	case domain.HealthWarning:
		return "atenção"
	default:
		return "boa"
	}
}
