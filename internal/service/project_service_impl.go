package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	statuses repository.ProjectStatusRepo
}

func NewProjectService(projects repository.ProjectRepo, statuses repository.ProjectStatusRepo) ProjectService {
	return &projectService{projects: projects, statuses: statuses}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := s.prepare(ctx, p); err != nil {
		return err
	}
	if p.ShortID != "" {
		if _, err := s.projects.GetByShortID(ctx, p.ShortID); err == nil {
			return fmt.Errorf("short ID %q is already in use", p.ShortID)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	return resolveProject(ctx, s.projects, ref)
}

func (s *projectService) List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error) {
	if f == (repository.ProjectFilter{}) {
		return s.projects.List(ctx)
	}
	return s.projects.Filter(ctx, f)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := s.prepare(ctx, p); err != nil {
		return err
	}
	if p.ShortID != "" {
		if other, err := s.projects.GetByShortID(ctx, p.ShortID); err == nil && other.ID != p.ID {
			return fmt.Errorf("short ID %q is already in use", p.ShortID)
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// prepare normalizes caller input and rejects invalid writes.
func (s *projectService) prepare(ctx context.Context, p *domain.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	p.Client = strings.TrimSpace(p.Client)

	priority, err := domain.ParsePriority(string(p.Priority))
	if err != nil {
		return err
	}
	p.Priority = priority

	if err := p.Validate(); err != nil {
		return err
	}

	if p.StatusID != "" {
		if _, err := s.statuses.GetByID(ctx, p.StatusID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("status %s does not exist", p.StatusID)
			}
			return err
		}
	}
	return nil
}
