package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/alexanderramin/triage/internal/scoring"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type boardService struct {
	statuses repository.ProjectStatusRepo
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	weights  scoring.Weights
	observer UseCaseObserver
}

// NewBoardService creates the board use case. weights is the configured
// default; a request may override it.
func NewBoardService(
	statuses repository.ProjectStatusRepo,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	weights scoring.Weights,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		statuses: statuses,
		projects: projects,
		tasks:    tasks,
		weights:  weights,
		observer: useCaseObserverOrNoop(observers),
	}
}

// boardSnapshot is one consistent read of everything the board needs.
type boardSnapshot struct {
	statuses []*domain.ProjectStatus
	projects []*domain.Project
	tasks    []*domain.Task
}

func (s *boardService) GetBoard(ctx context.Context, req app.BoardRequest) (resp *app.BoardResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"scope": len(req.ProjectScope)}
	defer observe(ctx, s.observer, "board", startedAt, fields, &err)

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	weights := s.weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	projects := filterProjectsByScope(snap.projects, req.ProjectScope)
	statusIndex := scoring.IndexStatuses(snap.statuses)
	tasksByProject := scoring.GroupTasksByProject(snap.tasks)

	ranked := scoring.OrderProjects(scoring.OrderInput{
		Now:            now,
		Projects:       projects,
		TasksByProject: tasksByProject,
		Statuses:       statusIndex,
		Weights:        &weights,
	})

	resp = &app.BoardResponse{
		Summary:  app.BoardSummary{GeneratedAt: now},
		Projects: make([]app.ProjectBoardView, 0, len(ranked)),
		Warnings: []string{},
	}
	for _, r := range ranked {
		if r.Project.StatusID != "" && r.Status == nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf(
				"project %s references unknown status %s; scored as active with the default status weight",
				r.Project.DisplayID(), r.Project.StatusID))
		}
		if r.IsFinal && !req.IncludeFinal {
			continue
		}
		view := buildProjectView(r, tasksByProject[r.Project.ID], now)
		addToSummary(&resp.Summary, view)
		resp.Projects = append(resp.Projects, view)
	}

	fields["projects"] = len(resp.Projects)
	fields["warnings"] = len(resp.Warnings)
	return resp, nil
}

// load reads statuses, projects and tasks concurrently. The three reads are
// independent; all of them finish before any scoring happens.
func (s *boardService) load(ctx context.Context) (*boardSnapshot, error) {
	var snap boardSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		statuses, err := s.statuses.List(gctx)
		if err != nil {
			return fmt.Errorf("loading statuses: %w", err)
		}
		snap.statuses = statuses
		return nil
	})
	g.Go(func() error {
		projects, err := s.projects.List(gctx)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		snap.projects = projects
		return nil
	})
	g.Go(func() error {
		tasks, err := s.tasks.List(gctx)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		snap.tasks = tasks
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func buildProjectView(r scoring.RankedProject, tasks []*domain.Task, now time.Time) app.ProjectBoardView {
	p := r.Project
	health := scoring.ClassifyHealth(scoring.HealthInput{
		Now:     now,
		Project: p,
		Status:  r.Status,
		Tasks:   tasks,
	})

	view := app.ProjectBoardView{
		ProjectID:   p.ID,
		ShortID:     p.ShortID,
		Title:       p.Title,
		Client:      p.Client,
		StatusName:  r.StatusName(),
		IsFinal:     r.IsFinal,
		Priority:    p.Priority,
		Progress:    p.Progress,
		StartDate:   formatDate(p.StartDate),
		Deadline:    formatDate(p.Deadline),
		Criticality: r.Criticality.Score,
		Band:        scoring.Band(r.Criticality.Score),
		Factors:     make([]app.CriticalityFactor, 0, len(r.Criticality.Factors)),
		Health:      health.Level,
		Issues:      health.Issues,
		Tasks:       countTasks(tasks, now),
	}
	if p.Deadline != nil {
		days := domain.DaysBetween(now, *p.Deadline)
		view.DaysLeft = &days
	}
	for _, f := range r.Criticality.Factors {
		view.Factors = append(view.Factors, app.CriticalityFactor{
			Code:    f.Code,
			Points:  f.Points,
			Message: f.Message,
		})
	}
	return view
}

func countTasks(tasks []*domain.Task, now time.Time) app.TaskCounts {
	c := app.TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			c.Completed++
		} else {
			c.Pending++
		}
		if t.IsBlocked() {
			c.Blocked++
		}
		if t.IsOverdue(now) {
			c.Overdue++
		}
	}
	return c
}

// addToSummary counts a view. Health counts cover active projects only.
func addToSummary(sum *app.BoardSummary, v app.ProjectBoardView) {
	sum.CountsTotal++
	if v.IsFinal {
		sum.CountsFinal++
		return
	}
	sum.CountsActive++
	switch v.Health {
	case domain.HealthGood:
		sum.CountsGood++
	case domain.HealthWarning:
		sum.CountsWarning++
	case domain.HealthCritical:
		sum.CountsCritical++
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
