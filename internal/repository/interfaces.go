package repository

import (
	"context"

	"github.com/alexanderramin/triage/internal/domain"
)

// ProjectFilter narrows a project listing. Zero-valued fields match any
// project.
type ProjectFilter struct {
	StatusID string
	Priority domain.Priority
	Client   string
}

// TaskFilter narrows a task listing. Zero-valued fields match any task.
type TaskFilter struct {
	ProjectID string
	Status    domain.TaskStatus
}

type ProjectStatusRepo interface {
	Create(ctx context.Context, s *domain.ProjectStatus) error
	GetByID(ctx context.Context, id string) (*domain.ProjectStatus, error)
	GetByName(ctx context.Context, name string) (*domain.ProjectStatus, error)
	List(ctx context.Context) ([]*domain.ProjectStatus, error)
	Update(ctx context.Context, s *domain.ProjectStatus) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Filter(ctx context.Context, f ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Filter(ctx context.Context, f TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ClientReportRepo interface {
	Create(ctx context.Context, r *domain.ClientReport) error
	GetByID(ctx context.Context, id string) (*domain.ClientReport, error)
	// List returns reports newest first. An empty projectID lists every
	// report.
	List(ctx context.Context, projectID string) ([]*domain.ClientReport, error)
}
