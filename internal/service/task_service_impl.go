package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo) TaskService {
	return &taskService{tasks: tasks, projects: projects}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if err := s.prepare(t); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("task project: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, f repository.TaskFilter) ([]*domain.Task, error) {
	if f == (repository.TaskFilter{}) {
		return s.tasks.List(ctx)
	}
	return s.tasks.Filter(ctx, f)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := s.prepare(t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	if err := s.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) prepare(t *domain.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	status, err := domain.ParseTaskStatus(string(t.Status))
	if err != nil {
		return err
	}
	t.Status = status
	t.Assignee = strings.TrimSpace(t.Assignee)
	return nil
}
