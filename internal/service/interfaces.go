package service

import (
	"context"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
)

type ProjectStatusService interface {
	Create(ctx context.Context, s *domain.ProjectStatus) error
	GetByID(ctx context.Context, id string) (*domain.ProjectStatus, error)
	// Resolve finds a status by ID or by case-insensitive name.
	Resolve(ctx context.Context, ref string) (*domain.ProjectStatus, error)
	List(ctx context.Context) ([]*domain.ProjectStatus, error)
	Update(ctx context.Context, s *domain.ProjectStatus) error
	Delete(ctx context.Context, id string) error
	// SeedDefaults creates the stock taxonomy entries that do not exist yet
	// and returns how many were created.
	SeedDefaults(ctx context.Context) (int, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve finds a project by short ID (case-insensitive) or by ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f repository.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type BoardService interface {
	app.BoardUseCase
}

type ImportService interface {
	app.ImportPortfolioUseCase
}

type ReportService interface {
	app.ReportUseCase
}
