package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/intelligence"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/google/uuid"
)

type reportService struct {
	board    app.BoardUseCase
	projects repository.ProjectRepo
	reports  repository.ClientReportRepo
	writer   intelligence.ReportWriter
	observer UseCaseObserver
}

func NewReportService(
	board app.BoardUseCase,
	projects repository.ProjectRepo,
	reports repository.ClientReportRepo,
	writer intelligence.ReportWriter,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		board:    board,
		projects: projects,
		reports:  reports,
		writer:   writer,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Generate(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project": req.ProjectRef}
	defer observe(ctx, s.observer, "report", startedAt, fields, &err)

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	boardReq := app.NewBoardRequest()
	boardReq.Now = &now

	scope := intelligence.ScopePortfolio
	var project *domain.Project
	if strings.TrimSpace(req.ProjectRef) != "" {
		project, err = resolveProject(ctx, s.projects, req.ProjectRef)
		if err != nil {
			return nil, err
		}
		scope = intelligence.ScopeProject
		boardReq.ProjectScope = []string{project.ID}
		fields["project_id"] = project.ID
		fields["short_id"] = project.ShortID
	}

	board, err := s.board.GetBoard(ctx, boardReq)
	if err != nil {
		return nil, fmt.Errorf("building board: %w", err)
	}

	written, err := s.writer.Write(ctx, intelligence.BuildPortfolioTrace(board, scope))
	if err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	report := &domain.ClientReport{
		ID:         uuid.New().String(),
		Title:      reportTitle(req.Title, project, now),
		Summary:    written.Draft.Summary,
		Highlights: intelligence.Lines(written.Draft.Highlights),
		Risks:      intelligence.Lines(written.Draft.Risks),
		Source:     written.Source,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	if project != nil {
		report.ProjectID = project.ID
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	fields["source"] = string(written.Source)
	return &app.ReportResponse{
		Report:         report,
		Fallback:       written.Source == domain.ReportFromDeterministic,
		FallbackReason: written.FallbackReason,
	}, nil
}

func (s *reportService) Get(ctx context.Context, id string) (*domain.ClientReport, error) {
	return s.reports.GetByID(ctx, strings.TrimSpace(id))
}

func (s *reportService) List(ctx context.Context, projectRef string) ([]*domain.ClientReport, error) {
	if strings.TrimSpace(projectRef) == "" {
		return s.reports.List(ctx, "")
	}
	p, err := resolveProject(ctx, s.projects, projectRef)
	if err != nil {
		return nil, err
	}
	return s.reports.List(ctx, p.ID)
}

func reportTitle(requested string, project *domain.Project, now time.Time) string {
	if t := strings.TrimSpace(requested); t != "" {
		return t
	}
	date := now.Format(dateLayout)
	if project != nil {
		return fmt.Sprintf("Relatório %s %s", project.DisplayID(), date)
	}
	return "Relatório do portfólio " + date
}
